/*
Package conditions implements the SPME decision rules.

Given a set of compounds and two caller-supplied flags (ionic species, high
matrix viscosity), Recommend derives one categorical level per experimental
factor from literature-derived thresholds. Each rule is independent of the
others and scans the worst-case analyte in the set, since every compound
shares one physical extraction run.

The result is an immutable Conditions record; no rule reads another rule's
output, so there is no ordering to get wrong.
*/
package conditions
