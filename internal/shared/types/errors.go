package types

import "errors"

var (
	ErrNoWorkbookFile = errors.New("no workbook file specified. Pass one with --file or as the first argument")
	ErrEmptyUpload    = errors.New("no file selected")
)
