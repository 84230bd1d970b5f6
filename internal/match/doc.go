// Package match provides name normalization, Levenshtein distance calculation
// and candidate ranking for entity field names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers so first_name and FirstName compare equal
//   - Levenshtein: computes edit distance between strings
//   - RankNames: ranks known names against a requested one
//   - Suggest: did-you-mean hints for unknown field and entity names
package match
