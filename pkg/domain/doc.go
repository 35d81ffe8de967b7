/*
Package domain defines the core value types for SPME experiment planning.

It holds the Compound record (the physicochemical properties of one analyte),
CAS Registry Number validation, the categorical experimental parameters
(fiber coating, extraction temperature, extraction time, salt addition,
agitation rate) and their quantization into numeric design levels.

Everything in this package is pure computation: no I/O, no shared state.
Compound resolution and persistence live behind the interfaces in pkg/ports.
*/
package domain
