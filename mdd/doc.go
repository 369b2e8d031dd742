// Package mdd compiles bounded-width multi-valued decision diagrams for discrete optimization problems.
//
// # Definition
//
// A problem is described as a dynamic program: a root state, and a transition function that, given a state
// and a variable, returns the states reached by assigning each acceptable value to that variable.
// Each state carries the value of the best path from the root, and a problem-specific representation:
// two states with equal representations have the same future, so they are stored as a single node.
// The goal is to find a complete assignment with the highest possible value.
//
// Compiling the whole diagram is generally not possible: the number of nodes grows exponentially
// with the depth. A Compiler thus bounds the number of nodes in each layer in two ways.
// A restricted diagram deletes the least promising nodes: every path it keeps is a real solution,
// so its best value is a lower bound of the optimum.
// A relaxed diagram merges the least promising nodes into a single one through Problem.Merge:
// it keeps every real solution but also adds spurious ones, so its best value is an upper bound of the optimum.
//
// The nodes of a relaxed diagram whose every ancestor is exact form its exact cutset: all the solutions
// of the problem go through one of them, or end on an exact node of the last layer. The solver package
// uses both kinds of diagrams, and the cutset, in a branch-and-bound search.
//
// # Heuristics
//
// Which variable is assigned next, and which nodes are merged or deleted, are decided by a VariableSelector,
// a MergeSelector and a DeleteSelector. Heuristics must respect their contract: selecting a bound variable,
// or the wrong number of nodes, fails the compilation with ErrInvalidSelection.
package mdd
