// Package services implements the driving port interfaces.
// Services contain the core business logic: the fan-out coordinator and
// the boost, rank and filter pipeline. They orchestrate calls to driven
// ports (adapters) and never import an adapter themselves.
package services
