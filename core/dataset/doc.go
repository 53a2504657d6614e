// Package dataset reads and writes the tabular inputs and outputs of a merge.
//
// A Dataset is a header plus text rows. Datasets come from delimited files, objects in the
// storage bucket, or SQL tables, addressed by reference:
//
//	contacts.csv        local file (.tsv implies tab)
//	s3://crm/2024.csv   object key in the configured bucket
//	table://contacts    table in the configured database
//
// A Resolver maps references onto Source and Sink implementations, and LoadPair fetches
// the old and new datasets of a merge in parallel.
package dataset
