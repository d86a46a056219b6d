/*
Package sandbox provides the isolated JavaScript execution realm for one
submission, built on the goja engine.

# Overview

Each execution request gets a fresh Context: a goja VM whose global
scope exposes only caller-sanctioned bindings:

  - console.log / warn / error / info / debug, capturing into one
    ordered line stream shared by every module of the request
  - input, the caller-supplied stdin-equivalent string
  - nothing else: process, timers and ambient host access are removed

Contexts are single-use. They are never pooled or shared between
requests, and everything created inside one (closures, exports, the
module cache) is unreachable once the request finishes.

# Modules

Workspace executions get a CommonJS-style require backed by the virtual
file table. A module loads at most once per request: the loader inserts
the module record before running its body, so a cycle observes the
partially populated exports object instead of recursing forever. Each
require is bound to the requesting file's own canonical path, keeping
relative resolution correct through nested loads.

# Budgets

A deadline watchdog drives goja's Interrupt. Budgets nest: a module
load runs under its own smaller budget, clamped to never outlast the
enclosing unit's deadline. Expiry surfaces as a timeout outcome, not a
host-level failure.

goja's interrupt is checked inside the interpreter loop, so plain busy
loops are preempted. Host-level hard termination (a killable worker
process) is the documented path for anything stronger; see the executor
package for the wrapper deadline that keeps callers from hanging.
*/
package sandbox
