package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/gofiber/fiber/v2"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// BodyValidator valida el cuerpo JSON contra el esquema reflejado del DTO destino
// antes de decodificarlo. Los esquemas se compilan una vez por tipo.
type BodyValidator struct {
	mu      sync.Mutex
	schemas map[reflect.Type]*jsonschema.Schema
}

// NewBodyValidator construye un validador vacío.
func NewBodyValidator() *BodyValidator {
	return &BodyValidator{schemas: make(map[reflect.Type]*jsonschema.Schema)}
}

// Bind valida c.Body() contra el esquema de out y lo decodifica en out (puntero).
// Los errores devueltos envuelven domain.ErrValidation.
func (v *BodyValidator) Bind(c *fiber.Ctx, out any) error {
	return v.Decode(c.Body(), out)
}

// Decode igual que Bind sobre un cuerpo ya leído.
func (v *BodyValidator) Decode(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: cuerpo vacío", domain.ErrValidation)
	}
	schema, err := v.schemaFor(reflect.TypeOf(out))
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: JSON mal formado: %v", domain.ErrValidation, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func (v *BodyValidator) schemaFor(t reflect.Type) (*jsonschema.Schema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if s, ok := v.schemas[t]; ok {
		return s, nil
	}
	s, err := compileSchema(t)
	if err != nil {
		return nil, err
	}
	v.schemas[t] = s
	return s, nil
}

func compileSchema(t reflect.Type) (*jsonschema.Schema, error) {
	reflector := invopop.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
		Mapper:                     mapDecimal,
	}
	raw, err := json.Marshal(reflector.ReflectFromType(t))
	if err != nil {
		return nil, fmt.Errorf("esquema %s: %w", t.Name(), err)
	}
	url := "mem://" + t.Name() + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("esquema %s: %w", t.Name(), err)
	}
	return compiler.Compile(url)
}

// mapDecimal montos: número JSON o string decimal.
func mapDecimal(t reflect.Type) *invopop.Schema {
	if t != decimalType {
		return nil
	}
	return &invopop.Schema{
		AnyOf: []*invopop.Schema{
			{Type: "number"},
			{Type: "string", Pattern: `^-?[0-9]+(\.[0-9]+)?$`},
		},
	}
}
