// Package layout models a meal layout (days, meals and product entries) and
// folds it into the per-ration product usage the provisioning calculator needs.
package layout
