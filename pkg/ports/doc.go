/*
Package ports defines the driven ports (interfaces) for the SPME planner.

These interfaces decouple the pure decision-and-design core from external
collaborators, allowing the planner to work with various compound resolvers,
boiling point sources and session storage backends.

# Key Interfaces

  - Resolver: looks up compound identity and properties by CAS number or CID
    (e.g. the PubChem adapter).
  - BoilingPointSource: supplies normal boiling points by compound name.
  - CompoundStore: persists per-session compound sets (memory, Redis).
*/
package ports
