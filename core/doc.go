// Package core defines the shared data model for the Lumos orchestration
// layer: chat messages, tool call requests and results, and the decision
// structures that drive agent handoff. The types here are plain values with
// no behavior beyond small constructors; every other package depends on core
// and core depends on nothing inside the module.
package core
