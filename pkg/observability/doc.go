/*
Package observability provides Prometheus instrumentation for the planner.

It counts design computations and resolver lookups and times HTTP requests;
the HTTP adapter exposes the registry on /metrics.
*/
package observability
