// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package normalize

import (
	"bytes"
	_ "embed"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed scan_result.schema.json
var scanResultSchemaJSON []byte

const scanResultSchemaURL = "scan_result.schema.json"

var scanResultSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(scanResultSchemaJSON))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(scanResultSchemaURL, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(scanResultSchemaURL)
})

// ValidateRecordShape checks the json types of a single uploaded record.
// Missing required values are reported by the model validation later.
func ValidateRecordShape(record []byte) error {
	schema, err := scanResultSchema()
	if err != nil {
		return errors.Wrap(err, "could not compile scan result schema")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(record))
	if err != nil {
		return err
	}
	if err := schema.Validate(inst); err != nil {
		// the validation error spans multiple lines
		return errors.New(strings.Join(strings.Fields(err.Error()), " "))
	}
	return nil
}
