package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/widecol/row"
)

const hexPrefix = "hex:"

// rowsFile is the YAML fixture read by the decode command:
//
//	rows:
//	  - key: row1
//	    cells:
//	      - {family: cf1, qualifier: q1, timestamp: 100, value: v1}
//	      - {family: cf1, qualifier: q2, timestamp: 50, value: "hex:0000002a"}
type rowsFile struct {
	Rows []rowDoc `yaml:"rows"`
}

type rowDoc struct {
	Key   string    `yaml:"key"`
	Cells []cellDoc `yaml:"cells"`
}

type cellDoc struct {
	Family    string `yaml:"family"`
	Qualifier string `yaml:"qualifier"`
	Timestamp int64  `yaml:"timestamp"`
	Value     string `yaml:"value"`
}

func readRows(path string) ([]*row.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rows: %w", err)
	}
	defer f.Close()

	return parseRows(f)
}

func parseRows(r io.Reader) ([]*row.Row, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc rowsFile
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse rows: %w", err)
	}

	rows := make([]*row.Row, 0, len(doc.Rows))
	for i, rd := range doc.Rows {
		key, err := parseBytes(rd.Key)
		if err != nil {
			return nil, fmt.Errorf("row %d key: %w", i, err)
		}

		b := row.NewBuilder(key)
		for j, c := range rd.Cells {
			family, err := parseBytes(c.Family)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d family: %w", i, j, err)
			}
			qualifier, err := parseBytes(c.Qualifier)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d qualifier: %w", i, j, err)
			}
			value, err := parseBytes(c.Value)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d value: %w", i, j, err)
			}
			b.Put(family, qualifier, c.Timestamp, value)
		}
		rows = append(rows, b.Build())
	}

	return rows, nil
}

// parseBytes returns s as UTF-8 bytes, or hex-decoded when prefixed "hex:".
func parseBytes(s string) ([]byte, error) {
	if !strings.HasPrefix(s, hexPrefix) {
		return []byte(s), nil
	}

	return hex.DecodeString(strings.TrimPrefix(s, hexPrefix))
}
