/*
prompt.go - Extraction prompts sent to the generative collaborator

PURPOSE:
  Builds the Spanish-language instructions that turn a bulletin or full
  sentence into a JSON array of fichas. The document text is appended
  to the instruction block, truncated to the generation input budget by
  the importer before it gets here.
*/
package jurisprudence

import "strings"

const bulletinInstructions = `Actúa como un Relator de la Corte Suprema experto en indexación.
Analiza el siguiente documento (Boletín Jurisprudencial) y extrae CADA UNA de las fichas jurisprudenciales encontradas.

FORMATO ESPERADO (JSON Array):
[
  {
    "radicado": "Número del radicado (ej: 52059)",
    "sentencia_id": "Código de sentencia (ej: SP2163-2018)",
    "ddp_number": "Número DDP si existe (ej: 110)",
    "tema": "Tema principal (ej: Inasistencia alimentaria)",
    "tesis": "Texto completo de la tesis jurídica (los puntos i, ii, iii...)",
    "source_url": "Enlace/Link si aparece en el texto asociado a este item"
  }
]

REGLAS:
- Extrae TODAS las entradas.
- Sé preciso con los números de radicado.
- Si encuentras un link de OneDrive/Sharepoint junto a la ficha, inclúyelo en 'source_url'.
- Retorna SOLO el JSON válido.`

const uploadInstructions = `Actúa como un Relator de la Corte Suprema experto en indexación.
Analiza la siguiente sentencia completa y construye su ficha jurisprudencial.

FORMATO ESPERADO (JSON Array con un único elemento):
[
  {
    "radicado": "Número del radicado",
    "sentencia_id": "Código de sentencia",
    "ddp_number": "Número DDP si existe",
    "tema": "Tema principal de la decisión",
    "tesis": "Síntesis de la tesis jurídica central",
    "source_url": ""
  }
]

REGLAS:
- Sé preciso con el número de radicado.
- Retorna SOLO el JSON válido.`

// extractionPrompt assembles the full prompt for a source type.
func extractionPrompt(source SourceType, text string) string {
	instructions := bulletinInstructions
	if source == SourceUpload {
		instructions = uploadInstructions
	}

	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\nDOCUMENTO:\n")
	b.WriteString(text)
	return b.String()
}
