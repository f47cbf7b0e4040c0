// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

package database

import "strings"

// stateFIPSPrefix maps two-letter state codes to their two-digit FIPS state
// prefix. Rows in states outside this table are dropped from county
// aggregates rather than emitted with a fabricated code.
var stateFIPSPrefix = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56", "PR": "72",
}

// buildCountyFIPS constructs the 5-digit county FIPS code from a state code
// and a county FIPS fragment. The fragment may arrive as 1-3 digits; it is
// left-padded to 3. Returns "" when the state is unknown or the fragment is
// empty or over-long, signalling the row should be dropped.
func buildCountyFIPS(state, countyCode string) string {
	prefix, ok := stateFIPSPrefix[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return ""
	}

	code := strings.TrimSpace(countyCode)
	if code == "" || len(code) > 3 {
		return ""
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return ""
		}
	}

	for len(code) < 3 {
		code = "0" + code
	}
	return prefix + code
}
