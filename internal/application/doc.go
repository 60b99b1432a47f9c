// Package application wires storage, the provisioning calculator, handlers,
// routers and the HTTP server together. Layouts are seeded from the configured
// YAML file and a default layout before the server starts.
package application
