package structure

import (
	"strings"
	"unicode/utf8"

	"github.com/molscope/molscope/pkg/errors"
)

// The summarizer itself never rejects input; these checks form the upload
// boundary that runs before it. Content that fails any of them is never
// handed to Summarize or ParseStructure.

// ValidateFilename rejects an empty filename and any filename whose
// extension is not .pdb (case-insensitive).
func ValidateFilename(name string) error {
	if name == "" {
		return errors.New(errors.CodeNoFileSelected, "no file selected")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdb") {
		return errors.New(errors.CodeInvalidExtension, "not a PDB file (must end with .pdb)").
			WithDetail("filename=" + name)
	}
	return nil
}

// DecodeText decodes raw upload bytes as UTF-8 text.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New(errors.CodeDecodeFailure, "file is not valid UTF-8 text")
	}
	return string(data), nil
}

// ValidateContent rejects text that contains neither ATOM nor HETATM
// anywhere. This is a substring gate, deliberately looser than the
// per-line qualifying test: it answers "could this possibly be a PDB
// file", not "how many atoms does it have".
func ValidateContent(text string) error {
	if !strings.Contains(text, "ATOM") && !strings.Contains(text, "HETATM") {
		return errors.New(errors.CodeInvalidContent, "invalid PDB file format (no ATOM or HETATM entries)")
	}
	return nil
}
