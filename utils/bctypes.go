package utils

// BCType represents the kind of boundary law written into a boundary row
type BCType uint8

const (
	// BCNone indicates no boundary condition (interior row)
	BCNone BCType = iota

	BCDirichlet // Fixed value
	BCNeumann   // Zero normal derivative, used on symmetry planes
	BCRobin     // Mixed derivative and value condition
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:      "None",
		BCDirichlet: "Dirichlet",
		BCNeumann:   "Neumann",
		BCRobin:     "Robin",
	}

	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}
