// Package geo loads labeled geographic points from CSV and projects them onto
// the planar map used for splitting clusters.
//
// The expected layout is a header line followed by records of the form
//
//	id,label,latitude,longitude[,...]
//
// The id column and any columns after longitude are ignored.
package geo
