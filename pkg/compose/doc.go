/*
Package compose builds composite commands out of child commands.

Four composition policies are provided:

  - Sequential: children run one after another.
  - Parallel: children run together; the group finishes when all have.
  - Race: children run together; the group finishes when any one has,
    interrupting the rest.
  - Deadline: children run together until a distinguished deadline child
    finishes, interrupting the rest.

A composite satisfies the Command contract, so groups nest arbitrarily.
All structural rules are enforced at construction time: the parallel-family
constructors reject siblings with overlapping subsystem requirements, and
every constructor rejects reused child instances and cyclic composition.
Children are fixed at construction; recomposing a group that is currently
scheduled is rejected.
*/
package compose
