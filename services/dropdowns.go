package services

// GSTSlabs are the standard GST rates suggested on the order form. Any rate
// from 0 to 100 is still accepted.
var GSTSlabs = []float64{0, 5, 12, 18, 28}
