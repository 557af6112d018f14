package schema

// defaultFile is the built-in registry covering the commissioning checklist
// workbook layouts. The SCHEMA_FILE env var can point at a JSON file with the
// same shape to replace it wholesale.
var defaultFile = File{
	Forms: []Form{
		{
			ID:            "1",
			TitleFragment: "VERIFICAÇÃO E INSPEÇÃO MEC.",
			Description:   "Análise mecânica e verificação de componentes",
			Columns:       []string{"Equipamento", "Quantidade", "Teste Realizado", "OK", "NOK", "Observações / Justificativa"},
		},
		{
			ID:            "2",
			TitleFragment: "INSPEÇÃO VISUAL",
			Description:   "Inspeção visual detalhada dos elementos",
			Columns:       []string{"SENSORES", "LOCAL INSTALADO", "TESTE REALIZADO", "OK", "NOK", "OBSERVAÇÕES"},
		},
		{
			ID:            "3",
			TitleFragment: "VALIDAÇÃO DE CIRCUITO",
			Description:   "Verificação e validação dos circuitos elétricos",
			Columns:       []string{"EQUIPAMENTO", "PONTO 1", "TAG P1", "PONTO 2", "TAG P2", "OK", "NOK", "OBSERVAÇÕES"},
		},
		{
			ID:            "4",
			TitleFragment: "ATERRAMENTO",
			Description:   "Testes e verificação do sistema de aterramento",
			Columns:       []string{"PONTO DE ATERRAMENTO", "OK", "NOK", "OBSERVAÇÕES"},
		},
		{
			ID:            "5",
			TitleFragment: "DESEMPENHO DO SISTEMA",
			Description:   "Avaliação do desempenho geral do sistema",
			Columns: []string{
				"EQUIPAMENTO",
				"PONTOS ALIMENTAÇÃO / ATERRAMENTO",
				"ALIMENTAÇÃO TEÓRICA",
				"ALIMENTAÇÃO AFERIDA",
				"OK",
				"NOK",
				"OBSERVAÇÕES",
			},
		},
		{
			ID:            "6",
			TitleFragment: "PROCEDIMENTO VERIFICAÇÃO CLP",
			Description:   "Verificação dos procedimentos do CLP",
			Columns:       []string{"EQUIPAMENTO", "OK", "NOK", "OBSERVAÇÕES"},
		},
	},
	HeaderKeywords: []string{
		"EQUIPAMENTO", "CIRCUITO", "PONTO", "SISTEMA", "TAG",
		"SENSOR", "SENSORES", "ATERRAMENTO", "ESTAÇÃO",
	},
	RepeatMarkers: []string{
		"EQUIPAMENTO", "SENSOR", "ATERRAMENTO", "ALIMENTAÇÃO",
	},
	StationAliases: []string{"ESTAÇÃO", "ESTACAO", "STATION"},
	FieldSegments: []FieldSegment{
		{
			Sheet:          "CHECK LIST CAMPO - INSTRUMENTAÇÃO",
			HeaderKeywords: [2]string{"TAG", "ESTAÇÃO"},
			Columns:        []string{"TAG", "ESTAÇÃO", "DESCRIÇÃO", "TESTE REALIZADO", "OK", "NOK", "OBSERVAÇÕES"},
		},
		{
			Sheet:          "CHECK LIST CAMPO - ELÉTRICA",
			HeaderKeywords: [2]string{"EQUIPAMENTO", "ESTAÇÃO"},
			Columns:        []string{"EQUIPAMENTO", "ESTAÇÃO", "CIRCUITO", "OK", "NOK", "OBSERVAÇÕES"},
		},
	},
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(defaultFile)
	if err != nil {
		// The built-in table is validated by tests; reaching this is a bug.
		panic(err)
	}
	return r
}
