package linalg

var accelerated = "gonum"

// Accelerator names the BLAS/LAPACK implementation in use: "gonum" for the
// pure Go routines, "netlib" when built with the netlib tag.
func Accelerator() string { return accelerated }
