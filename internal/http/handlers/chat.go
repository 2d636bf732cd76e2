package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vmduarte/conciliador-backend/internal/http/response"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
	"github.com/vmduarte/conciliador-backend/internal/platform/openai"
)

const chatSystemPrompt = `Você é a IA Conciliador Bancário.

Responda SEMPRE em português do Brasil, de forma didática e objetiva.
Seu foco é:

- conciliação bancária
- diferenças entre extrato bancário (DOC1) e controle interno (DOC2)
- uso opcional do arquivo de duplicatas (DOC3)
- divergências de lançamentos
- interpretação do Excel de divergências gerado pela conciliação

Não diga que não tem acesso aos arquivos.
Explique conceitos, boas práticas e possíveis causas de divergência.`

const chatFallbackReply = "Pode me perguntar qualquer coisa sobre conciliação bancária, DOC1, DOC2 ou DOC3."

type ChatHandler struct {
	log    *logger.Logger
	client openai.Client
}

func NewChatHandler(log *logger.Logger, client openai.Client) *ChatHandler {
	return &ChatHandler{log: log.With("handler", "ChatHandler"), client: client}
}

type chatRequest struct {
	Pergunta string `json:"pergunta"`
}

type chatReply struct {
	Reply string `json:"reply"`
}

// Chat is the reconciliation helper assistant backed by the same oracle
// client as the pipeline.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_chat_request", err)
		return
	}

	question := strings.TrimSpace(req.Pergunta)
	if question == "" {
		response.RespondOK(c, chatReply{Reply: chatFallbackReply})
		return
	}

	reply, err := h.client.GenerateText(c.Request.Context(), chatSystemPrompt, question)
	if err != nil {
		h.log.Error("Chat generation failed", "error", err)
		response.RespondError(c, http.StatusBadGateway, "chat_failed", err)
		return
	}
	response.RespondOK(c, chatReply{Reply: reply})
}
