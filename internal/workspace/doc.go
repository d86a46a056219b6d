/*
Package workspace implements the in-memory virtual filesystem backing
multi-file executions.

# Overview

A workspace is an immutable table of slash-normalized, workspace-relative
paths mapped to source text, plus a designated entry path. The table is
built once per execution request and discarded with it.

Module specifiers are resolved against the table with a deliberately
narrow algorithm:

 1. Only relative specifiers ("./x", "../y") are accepted. Absolute and
    bare specifiers are denied outright; this is the sandbox's sole
    containment mechanism for the module graph.
 2. The specifier is joined against the requesting file's directory and
    "." / ".." segments are collapsed. Any resolution that would climb
    above the workspace root is denied, whether or not something exists
    at the escaped location.
 3. The canonical path is looked up in the table, trying the path as
    given and with a ".js" suffix.

# Errors

Resolution failures are ErrAccessDenied (containment violation) or
ErrNotFound (valid path, no such file), both carrying the offending
specifier.
*/
package workspace
