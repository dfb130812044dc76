// Package normalisers turns input files into chainable prose. Each
// subpackage handles one document format and the Registry here picks the
// best one for a file by MIME type, detecting the type from the file
// extension when the caller does not supply it.
package normalisers
