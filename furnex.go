// Package furnex extracts furniture product names from web pages by
// combining structured-data scraping (JSON-LD, Open Graph, meta tags),
// named-entity recognition, and keyword heuristics, and merging the
// three signal sources into one deduplicated, ranked candidate list.
//
// This package contains domain types, interfaces, and the pure
// extraction logic. Implementations live in subdirectories named after
// their primary dependency (e.g., goquery/, trafilatura/, prose/),
// orchestration lives in extract/, and the HTTP surface in http/.
package furnex
