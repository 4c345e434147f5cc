// Package archive provides access to the ZIP container of a workbook package.
//
// An Archive is an index of named parts over an in-memory copy of the
// package. Opening never keeps a file handle: OpenFile reads the file and
// releases it before returning, on every path.
//
// Some producers append bytes after the end-of-central-directory record,
// which makes strict ZIP readers reject the file. Open detects that case and
// applies RepairCentralDirectory once before indexing.
//
// Compound files (legacy binary workbooks and encrypted packages) are
// recognized and rejected with ErrInvalidFile.
package archive
