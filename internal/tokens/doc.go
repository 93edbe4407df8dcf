// Package tokens estimates token counts for usage reporting.
//
// Providers that report usage in their responses are trusted; otherwise the
// counts are estimated from the text. Estimates count runes rather than
// bytes so that Arabic, Urdu and Bengali text, which is several bytes per
// character in UTF-8, is not overcounted.
package tokens
