// Package frame defines the data types and producer contract shared by the
// prefetch worker and its collaborators: the decoded [Frame] itself, the
// [Source] interface a decoder or composited timeline must satisfy, and the
// sentinel errors a [Source] may report.
//
// This package contains no caching or scheduling logic; it is the narrow
// boundary between the prefetch core and whatever actually produces pixels.
package frame
