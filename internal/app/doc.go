// Package app provides the main Bubble Tea application model for ib.
//
// It implements the workflow state machine: prerequisite check, issue
// fetch, fuzzy issue selection, branch-name confirmation with a
// base-branch picker, and branch creation. External git and gh calls
// are reached through the Backend interface so the machine can be
// tested with fakes.
//
// The main type is Model, which implements the Bubble Tea interface
// (Init, Update, View).
package app
