// Package pets defines the Pet schema shared by the backend gateway, the
// local fallback store, and the sample dataset.
//
// Every source decodes through Pet.UnmarshalJSON or Normalize so the rest of
// petdesk only ever sees pets with a known Type, a non-negative Price, and a
// non-empty Name. Filter and Summarize are pure helpers over a collection and
// back the search box and the statistics header.
package pets
