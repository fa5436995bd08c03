package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadFloatTable reads a whitespace-separated numeric table, one row per
// line, skipping empty lines. All rows must have the same number of columns.
func ReadFloatTable(filename string) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	var result [][]float64

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Fields(line)

		if len(parts) == 0 {
			continue
		}
		if len(result) > 0 && len(parts) != len(result[0]) {
			return nil, fmt.Errorf("ragged table in line %q: expected %d columns, got %d", line, len(result[0]), len(parts))
		}

		row := make([]float64, len(parts))
		for i := range parts {
			row[i], err = strconv.ParseFloat(parts[i], 64)
			if err != nil {
				return nil, fmt.Errorf("error parsing float in line %q: %w", line, err)
			}
		}
		result = append(result, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return result, nil
}

// ReadFloatPairs reads a strictly two-column table.
func ReadFloatPairs(filename string) ([][]float64, error) {
	table, err := ReadFloatTable(filename)
	if err != nil {
		return nil, err
	}
	for i := range table {
		if len(table[i]) != 2 {
			return nil, fmt.Errorf("invalid format in line %d of %s - expected 2 numbers, got %d", i+1, filename, len(table[i]))
		}
	}
	return table, nil
}

func GetFilename(filePath string) string {
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

func OpenFile(makeDir bool, outputPath, subdir, name string) (*os.File, error) {
	if makeDir && subdir != "" && subdir != "." {
		os.MkdirAll(outputPath+subdir, 0750)
		return os.Create(outputPath + subdir + "/" + name + ".csv")
	}
	if subdir != "" {
		return os.Create(outputPath + subdir + "_" + name + ".csv")
	}
	return os.Create(outputPath + name + ".csv")
}
