package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/xhad/molrmsd/pkg/molecule"
)

type Message struct {
	Type    string      `json:"type"`
	Content string      `json:"content"`
	Data    interface{} `json:"data,omitempty"`
}

type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type CompareRequest struct {
	Probe     Upload `json:"probe"`
	Reference Upload `json:"reference"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.config.MaxUploadSize)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("error reading message", zap.Error(err))
			}
			break
		}

		var msg inbound
		if err := json.Unmarshal(message, &msg); err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("invalid message: %v", err), nil)
			continue
		}
		s.handleMessage(r, conn, msg)
	}
}

func (s *Server) handleMessage(r *http.Request, conn *websocket.Conn, msg inbound) {
	switch msg.Type {
	case "formats":
		s.sendMessage(conn, "formats", "", molecule.SupportedFormats())
	case "compare":
		var req CompareRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("invalid compare request: %v", err), nil)
			return
		}

		s.sendMessage(conn, "status", fmt.Sprintf("Comparing %s with %s", req.Probe.Name, req.Reference.Name), nil)
		result, err := s.Compare(r.Context(), uuid.NewString(), req.Probe, req.Reference)
		if err != nil {
			s.sendMessage(conn, "error", err.Error(), nil)
			return
		}
		s.sendMessage(conn, "result", fmt.Sprintf("RMSD: %.4f", result.RMSD), result)
	default:
		s.sendMessage(conn, "error", fmt.Sprintf("unknown message type %q", msg.Type), nil)
	}
}

func (s *Server) sendMessage(conn *websocket.Conn, msgType, content string, data interface{}) {
	msg := Message{
		Type:    msgType,
		Content: content,
		Data:    data,
	}
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("error sending message", zap.Error(err))
	}
}
