package ports

import "context"

// Candidate is one possible identity for a CAS number, as reported by the
// upstream chemical registry. A CAS number can map to several CIDs; the
// caller picks one before properties are turned into a Compound.
type Candidate struct {
	CID             int     `json:"cid"`
	IUPACName       string  `json:"iupac_name"`
	XLogP           float64 `json:"xlogp"`
	MolecularWeight float64 `json:"molecular_weight"`
}

// Resolver looks up compound identity and physicochemical properties from an
// external registry. Implementations perform I/O and must honor the context.
type Resolver interface {
	// Candidates returns every compound matching the given (already
	// sanitized) CAS number. Returns domain.ErrCompoundNotFound when the
	// registry has no match.
	Candidates(ctx context.Context, cas string) ([]Candidate, error)

	// Properties returns the candidate record for a single CID.
	Properties(ctx context.Context, cid int) (Candidate, error)
}

// BoilingPointSource supplies normal boiling points in degrees Celsius by
// compound name. Returns domain.ErrBoilingPointNotFound for unknown names.
type BoilingPointSource interface {
	BoilingPointC(name string) (float64, error)
}
