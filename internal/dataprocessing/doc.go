// Package dataprocessing parses PVOIL fuel price publications into domain
// records. It handles the quirks of the published data: day-first dates,
// header aliases across publication vintages, thousands separators in
// prices, and a UTF-8 BOM on files exported from Excel.
//
// # Usage
//
// Parse a whole CSV document:
//
//	records, rejected, err := dataprocessing.ParseCSV(ctx, reader, logger)
//
// Rows that cannot produce a valid record (unparseable date, blank
// product, non-numeric price) are counted and logged, never silently
// dropped; the remaining rows still parse. A document whose every row is
// rejected yields no records but no error — availability decisions
// belong to the store.
package dataprocessing
