// Package exporter writes derived datasets to CSV and XLSX files.
//
// CSV output carries a UTF-8 BOM so Excel opens Vietnamese product names
// correctly. Prices are formatted with Vietnamese thousands separators
// (24.280) through FormatVND. The XLSX report is built with excelize and
// holds one sheet per product series plus a summary sheet of statistics.
package exporter
