package deck

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Archidekt export line markers.
const (
	foilMarker   = "*F*"
	etchedMarker = "*E*"
)

// ParseFile reads an Archidekt deck list export and returns the deck. The
// deck name is the file name without extension. Blank lines are skipped;
// malformed quantity prefixes fall back to a quantity of 1.
func ParseFile(path string) (*Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck list: %w", err)
	}
	defer file.Close()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	result := &Deck{Name: name}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.Entries = append(result.Entries, parseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read deck list: %w", err)
	}
	return result, nil
}

// parseLine handles "[<qty>[x]] <name> [(SET)] [<collector>] [*F*] [*E*]".
func parseLine(line string) *Entry {
	entry := &Entry{}

	nameStart := strings.IndexByte(line, ' ') + 1
	quantityPart := line
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		quantityPart = line[:idx]
	}
	if len(quantityPart) > 1 && strings.ContainsRune(quantityPart, 'x') {
		quantityPart = quantityPart[:len(quantityPart)-1]
	}
	quantity, err := strconv.Atoi(quantityPart)
	if err != nil {
		quantity = 1
		nameStart = 0
	}
	entry.Quantity = quantity

	expansionStart := strings.IndexByte(line, '(')
	expansionEnd := strings.IndexByte(line, ')')
	foilIndex := strings.Index(line, foilMarker)
	etchedIndex := strings.Index(line, etchedMarker)

	nameEnd := len(line)
	for _, idx := range []int{expansionStart, foilIndex, etchedIndex} {
		if idx != -1 && idx < nameEnd {
			nameEnd = idx
		}
	}
	entry.Name = strings.TrimRight(line[nameStart:nameEnd], " ")

	if expansionStart != -1 && expansionEnd > expansionStart {
		entry.ExpansionCode = strings.TrimRight(line[expansionStart+1:expansionEnd], " ")
		// A collector number may follow the set code, before any markers.
		for _, field := range strings.Fields(line[expansionEnd+1:]) {
			if field == foilMarker || field == etchedMarker {
				break
			}
			entry.CollectorNumber = field
			break
		}
	}
	entry.IsFoil = foilIndex != -1
	entry.IsEtched = etchedIndex != -1

	return entry
}
