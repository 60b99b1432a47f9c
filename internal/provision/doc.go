// Package provision turns a layout's per-ration product usage into purchase
// quantities for a trip: servings per product, grams per product and the trip total.
package provision
