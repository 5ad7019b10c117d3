package llm

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
)

// LoadDocument reads a résumé file from disk.
func LoadDocument(path string, maxMB int) (Document, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Document{}, common.WrapError(err, "stat document")
	}
	if st.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory: %w", path, common.ErrInvalidInput)
	}
	if err := checkSize(st.Size(), maxMB); err != nil {
		return Document{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, common.WrapError(err, "read document")
	}
	return NewDocument(filepath.Base(path), b, maxMB)
}

// NewDocument validates an in-memory upload by extension and size.
func NewDocument(filename string, data []byte, maxMB int) (Document, error) {
	ext := constants.NormalizeExt(filepath.Ext(filename))
	mt, ok := constants.MIMEType(ext)
	if !ok {
		return Document{}, fmt.Errorf("unsupported document type %q: %w", ext, common.ErrInvalidInput)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("empty document %s: %w", filename, common.ErrInvalidInput)
	}
	if err := checkSize(int64(len(data)), maxMB); err != nil {
		return Document{}, err
	}
	return Document{
		Filename: filename,
		Format:   constants.MapExtToFormat(ext),
		MIMEType: mt,
		Data:     data,
	}, nil
}

// DataURL encodes the document for providers that take inline URLs.
func (d Document) DataURL() string {
	return "data:" + d.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

func checkSize(size int64, maxMB int) error {
	if maxMB <= 0 {
		maxMB = constants.MaxDocumentMBDefault
	}
	if size > int64(maxMB)*1024*1024 {
		return fmt.Errorf("document is %d bytes, limit is %d MB: %w", size, maxMB, common.ErrInvalidInput)
	}
	return nil
}
