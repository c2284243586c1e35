package invoice

import (
	"fmt"
	"strings"
)

// Reply keys the model is asked to produce.
const (
	KeyZone   = "Zona del Proyecto"
	KeyDemand = "Consumo promedio mensual de energía"
	KeyCost   = "Costo del kWh"
)

// SystemPrompt frames the model as an invoice reader.
const SystemPrompt = "Eres un asistente que extrae datos de facturas de servicios públicos."

// BuildPrompt asks the model to pick one of zones and report consumption and price.
func BuildPrompt(text string, zones []string) string {
	var b strings.Builder
	b.WriteString("A continuación tienes el texto de una factura de servicios públicos. ")
	b.WriteString("Extrae la siguiente información:\n\n")
	b.WriteString("1. Región correspondiente a la ciudad de la factura (elige una de las siguientes):\n")
	for _, z := range zones {
		fmt.Fprintf(&b, "    - %s\n", z)
	}
	b.WriteString("2. Consumo promedio mensual de energía en kWh.\n")
	b.WriteString("3. Costo del kWh en pesos colombianos (COP).\n\n")
	fmt.Fprintf(&b, "Texto de la factura:\n\"\"\"%s\"\"\"\n\n", text)
	b.WriteString("Responde exactamente en el siguiente formato:\n")
	fmt.Fprintf(&b, "%s: <zona>\n", KeyZone)
	fmt.Fprintf(&b, "%s: <valor> kWh/mes\n", KeyDemand)
	fmt.Fprintf(&b, "%s: $<valor> COP\n", KeyCost)
	return b.String()
}
