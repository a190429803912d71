package forms

// DefaultTemplate returns the fixed nine-question schema every supplier
// starts from. It is also the target of the explicit reset-to-default
// operation. The template is not exempt from Build's rules; a test pins
// that it always validates.
func DefaultTemplate() Schema {
	return Schema{
		{
			Prompt:      "Nome completo",
			Kind:        KindText,
			Required:    true,
			Placeholder: "Digite seu nome completo",
		},
		{
			Prompt:      "E-mail",
			Kind:        KindEmail,
			Required:    true,
			Placeholder: "seu@email.com",
		},
		{
			Prompt:      "Telefone/WhatsApp",
			Kind:        KindPhone,
			Required:    true,
			Placeholder: "(00) 00000-0000",
		},
		{
			Prompt:      "Data do evento",
			Kind:        KindDate,
			Required:    true,
			Placeholder: "Selecione a data",
		},
		{
			Prompt:      "Número de convidados",
			Kind:        KindNumber,
			Required:    true,
			MinValue:    floatPtr(1),
			Placeholder: "Ex: 100",
		},
		{
			Prompt:      "Local do evento",
			Kind:        KindText,
			Required:    false,
			Placeholder: "Cidade, Estado",
		},
		{
			Prompt:   "Tipo de evento",
			Kind:     KindRadio,
			Required: true,
			Options: []string{
				"Casamento",
				"Aniversário",
				"Formatura",
				"Corporativo",
				"Festa Infantil",
				"Outro",
			},
		},
		{
			Prompt:   "Orçamento estimado",
			Kind:     KindSelect,
			Required: false,
			Options: []string{
				"Até R$ 5.000",
				"R$ 5.000 - R$ 10.000",
				"R$ 10.000 - R$ 20.000",
				"R$ 20.000 - R$ 50.000",
				"Acima de R$ 50.000",
			},
		},
		{
			Prompt:      "Conte-nos mais sobre seu evento",
			Kind:        KindTextarea,
			Required:    false,
			MaxLength:   intPtr(1000),
			Placeholder: "Detalhes adicionais sobre o evento, preferências, etc.",
		},
	}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
