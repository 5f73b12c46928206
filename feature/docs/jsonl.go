package docs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeJSONL writes records as newline-delimited JSON to w.
func EncodeJSONL[T any](w io.Writer, records []T) error {
	enc := json.NewEncoder(w)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// MarshalJSONL renders records as a JSONL byte buffer, ready for upload.
func MarshalJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeJSONL(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSONL writes records to a JSONL artifact file, creating the
// directory as needed. The artifact doubles as a checkpoint: a failed
// publish can be re-run from it without re-fetching anything.
func WriteJSONL[T any](path string, records []T) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := EncodeJSONL(w, records); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSONL loads records from a JSONL artifact file.
func ReadJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []T
	dec := json.NewDecoder(f)
	for {
		var rec T
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
