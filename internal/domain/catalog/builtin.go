package catalog

// builtinTypes is the rubric table shipped with the service.
var builtinTypes = []TaskType{ //nolint:gochecknoglobals // static configuration table
	{
		Name: "PRA",
		Rule: RuleThreshold,
		Criteria: []Criterion{
			{Name: CriterionQuality, Weight: 60, Description: "Exactitud del resultado; por debajo de 70 no suma"},
			{Name: "Tiempo de entrega", Weight: 20, Description: "Entrega dentro del plazo acordado"},
			{Name: CriterionInstructions, Weight: 20, Description: "Apego al procedimiento indicado"},
		},
	},
	{
		Name: "Validacion",
		Rule: RuleThreshold,
		Criteria: []Criterion{
			{Name: CriterionQuality, Weight: 60, Description: "Hallazgos correctos y completos; por debajo de 70 no suma"},
			{Name: "Tiempo de entrega", Weight: 20},
			{Name: "Documentación", Weight: 20, Description: "Evidencia registrada de la validación"},
		},
	},
	{
		Name: "Práctica de procesos",
		Rule: RuleProcess,
		Criteria: []Criterion{
			{Name: CriterionQuality, Weight: 60, Description: "Ejecución correcta del proceso; por debajo de 70 no suma"},
			{Name: CriterionInstructions, Weight: 40, Description: "Cuenta el 40% de la calificación"},
		},
	},
	{
		Name: "Entrenamientos (Brinda)",
		Criteria: []Criterion{
			{Name: "Dominio del tema", Weight: 40},
			{Name: "Claridad de la exposición", Weight: 30},
			{Name: "Material de apoyo", Weight: 30},
		},
	},
	{
		Name: "Entrenamientos (Recibe)",
		Criteria: []Criterion{
			{Name: "Participación", Weight: 50},
			{Name: "Evaluación final", Weight: 50},
		},
	},
	{
		Name: "Documentación",
		Criteria: []Criterion{
			{Name: CriterionQuality, Weight: 50},
			{Name: "Completitud", Weight: 30},
			{Name: "Tiempo de entrega", Weight: 20},
		},
	},
	{
		Name: "Soporte",
		Criteria: []Criterion{
			{Name: "Tiempo de respuesta", Weight: 40},
			{Name: "Resolución", Weight: 40},
			{Name: "Comunicación", Weight: 20},
		},
	},
	{
		Name: "Proyecto especial",
		Criteria: []Criterion{
			{Name: CriterionQuality, Weight: 40},
			{Name: "Innovación", Weight: 30},
			{Name: "Tiempo de entrega", Weight: 30},
		},
	},
}

var builtin = MustNew(builtinTypes...) //nolint:gochecknoglobals // validated once at init

// Default returns the built-in catalog.
func Default() *Catalog { return builtin }
