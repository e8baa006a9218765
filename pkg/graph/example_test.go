package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/lineage/pkg/graph"
)

func ExampleReadChart() {
	doc := `
[[nodes]]
id = "anna"
name = "Anna"
year = 1850

[[nodes]]
id = "ida"
name = "Ida"
year = "1870s"

[[links]]
source = "anna"
target = "ida"
type = "child"
`
	data, err := graph.ReadChart(strings.NewReader(doc), graph.FormatTOML)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, p := range data.Nodes {
		fmt.Printf("%s born %s (sorts as %d)\n", p.Name, p.Year, p.Year.Value)
	}
	fmt.Println("links:", len(data.Links))
	// Output:
	// Anna born 1850 (sorts as 1850)
	// Ida born 1870s (sorts as 1870)
	// links: 1
}

func ExampleChartFormat() {
	fmt.Println(graph.ChartFormat("charts/mueller.toml"))
	fmt.Println(graph.ChartFormat("charts/mueller.json"))
	// Output:
	// toml
	// json
}
