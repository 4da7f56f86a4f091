package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common capture workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("review_pending").
		Description("Walk through captured items that still need confirmation and fix or confirm each one.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Review pending captures",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Vamos revisar meus registros rápidos. Por favor:

1. Leia o recurso medplanner://capture/pending
2. Para cada item, mostre categoria, título, data, hora e valor
3. Pergunte se está correto; se estiver, use a ferramenta capture.confirm
4. Se não estiver, peça a frase corrigida e use capture.add com ela

Responda em português.`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("weekly_capture").
		Description("Capture a batch of sentences describing the week, one capture.add call per sentence.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Weekly capture session",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Vou listar provas, contas, treinos e refeições da semana.
Para cada frase, chame capture.add com o texto exato. Depois, liste com capture.list
e destaque os itens marcados como "requiresConfirmation".`,
						},
					},
				},
			}, nil
		})

	return nil
}
