// Package utils provides small conversion helpers shared by the dataset and database layers.
// It holds logic that doesn't belong to a single domain package, such as turning scanned
// SQL values into field text.
package utils
