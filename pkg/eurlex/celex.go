package eurlex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// celexPattern matches a CELEX identifier with a 4-digit year, including
	// corrigendum and consolidation suffixes such as "32016R0679R(02)".
	celexPattern = regexp.MustCompile(`([0-9]{5}[A-Z]{1,2}[0-9]{4}[A-Z]*\(?[0-9]*\)?)`)

	wholeCELEXPattern = regexp.MustCompile(`^([0-9CE])([0-9]{4})([A-Z]{1,2})([0-9]{4,})`)

	// folderPattern matches TYPE-YEAR-NUMBER with an optional one-segment
	// type qualifier (REG-IMPL, DEC-IMPL).
	folderPattern = regexp.MustCompile(`(\w+(?:-\w+)?)-(\d{4})-(\d+)`)
)

// folderTypeCodes maps folder type prefixes to CELEX type codes. Unknown
// prefixes default to TypeRegulation.
var folderTypeCodes = map[string]DocumentTypeCode{
	"REG":       TypeRegulation,
	"REG-IMPL":  TypeRegulation,
	"REG-DELEG": TypeRegulation,
	"DIR":       TypeDirective,
	"DEC":       TypeDecision,
	"DEC-IMPL":  TypeDecision,
}

// IsOriginalAct reports whether celex identifies an act of secondary
// legislation itself (sector 3) rather than case law, a consolidated version
// or a preparatory act.
func IsOriginalAct(celex string) bool {
	return strings.HasPrefix(celex, string(SectorLegislation))
}

// ParseCELEX splits a CELEX identifier into its parts. Suffixes after the
// number (corrigenda, consolidation dates) are ignored.
func ParseCELEX(celex string) (CELEXNumber, error) {
	match := wholeCELEXPattern.FindStringSubmatch(strings.TrimSpace(celex))
	if match == nil {
		return CELEXNumber{}, fmt.Errorf("not a CELEX identifier: %q", celex)
	}
	return CELEXNumber{
		Sector:   DocumentSector(match[1]),
		Year:     match[2],
		TypeCode: DocumentTypeCode(match[3]),
		Number:   match[4],
	}, nil
}

// FindCELEX returns the first CELEX identifier embedded in text, typically a
// folder name such as "32016R0679_GDPR".
func FindCELEX(text string) (string, bool) {
	match := celexPattern.FindString(text)
	return match, match != ""
}

// ParseFolderName reads the TYPE-YEAR-NUMBER structure from a folder name.
// The type is upper-cased.
func ParseFolderName(name string) (FolderName, bool) {
	match := folderPattern.FindStringSubmatch(name)
	if match == nil {
		return FolderName{}, false
	}
	return FolderName{
		Type:   strings.ToUpper(match[1]),
		Year:   match[2],
		Number: match[3],
	}, true
}

// CELEXFromFolderName derives the sector-3 CELEX identifier a download folder
// most likely holds: "REG-2016-679" -> "32016R0679".
func CELEXFromFolderName(name string) (CELEXNumber, bool) {
	folder, ok := ParseFolderName(name)
	if !ok {
		return CELEXNumber{}, false
	}

	typeCode, known := folderTypeCodes[folder.Type]
	if !known {
		typeCode = TypeRegulation
	}

	return CELEXNumber{
		Sector:   SectorLegislation,
		Year:     folder.Year,
		TypeCode: typeCode,
		Number:   padCELEXNumber(folder.Number),
	}, true
}

// NormalizeYear converts a 2-digit year to 4-digit.
// Uses 1958 as the cutoff (year the EU/EEC was founded):
// - Years >= 58 are interpreted as 19xx (e.g., "95" -> "1995")
// - Years < 58 are interpreted as 20xx (e.g., "16" -> "2016")
// 4-digit years pass through unchanged.
func NormalizeYear(yearString string) string {
	if len(yearString) == 2 {
		yearValue, err := strconv.Atoi(yearString)
		if err != nil {
			return yearString
		}
		if yearValue >= 58 {
			return "19" + yearString
		}
		return "20" + yearString
	}
	return yearString
}

// padCELEXNumber pads a document number to 4 digits with leading zeros.
// Example: "679" -> "0679", "46" -> "0046", "1" -> "0001"
func padCELEXNumber(numberString string) string {
	for len(numberString) < 4 {
		numberString = "0" + numberString
	}
	return numberString
}
