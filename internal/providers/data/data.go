package data

import _ "embed"

//go:embed tours.json
var ToursData []byte
