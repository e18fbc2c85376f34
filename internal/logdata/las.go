package logdata

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadLAS reads a well-log frame from a LAS 2.0 file. Only the pieces the
// pipeline needs are interpreted: the NULL value from the well information
// section, the curve names from the curve section, and the ASCII data
// block. The first curve is taken as the depth index.
func LoadLAS(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open LAS file: %w", err)
	}
	defer file.Close()

	frame, err := ReadLAS(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return frame, nil
}

// ReadLAS reads a frame from LAS 2.0 content.
func ReadLAS(r io.Reader) (*Frame, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	null := DefaultNull
	var curves []string
	section := ""

	var depths []float64
	data := map[string][]float64{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "~") {
			if len(line) < 2 {
				return nil, fmt.Errorf("section marker %q has no section letter", line)
			}
			section = strings.ToUpper(line[:2])
			continue
		}

		switch section {
		case "~W":
			mnemonic, value := parseLASLine(line)
			if strings.EqualFold(mnemonic, "NULL") {
				if v, err := strconv.ParseFloat(value, 64); err == nil {
					null = v
				}
			}
		case "~C":
			mnemonic, _ := parseLASLine(line)
			if mnemonic != "" {
				curves = append(curves, mnemonic)
			}
		case "~A":
			if len(curves) < 2 {
				return nil, fmt.Errorf("data section before curve definitions")
			}
			fields := strings.Fields(line)
			if len(fields) != len(curves) {
				return nil, fmt.Errorf("data row has %d fields, want %d", len(fields), len(curves))
			}
			for i, raw := range fields {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("parse value %q: %w", raw, err)
				}
				if i == 0 {
					depths = append(depths, v)
					continue
				}
				if v == null {
					v = Missing
				}
				data[curves[i]] = append(data[curves[i]], v)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan LAS content: %w", err)
	}
	if len(curves) < 2 {
		return nil, fmt.Errorf("no curves defined")
	}

	return NewFrame(depths, curves[1:], data)
}

// parseLASLine splits a LAS parameter line of the form
// "MNEM.UNIT  VALUE : DESCRIPTION" into mnemonic and value.
func parseLASLine(line string) (mnemonic, value string) {
	if i := strings.LastIndex(line, ":"); i >= 0 {
		line = line[:i]
	}
	dot := strings.Index(line, ".")
	if dot < 0 {
		return "", ""
	}
	mnemonic = strings.TrimSpace(line[:dot])
	rest := line[dot+1:]
	// unit, if any, runs to the first whitespace after the dot
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		value = strings.TrimSpace(rest[i:])
	}
	return mnemonic, value
}
