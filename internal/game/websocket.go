// websocket.go

package game

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/kikennmodsett-of-git/kikennmodsett/internal/battle"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/protocol"
	"github.com/kikennmodsett-of-git/kikennmodsett/internal/session"
)

const (
	// 写入超时时间
	writeWait = 10 * time.Second

	// 读取超时时间
	pongWait = 60 * time.Second

	// 发送 ping 的间隔时间
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 允许所有跨域请求
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WelcomeInfo 连接成功后的第一条消息
type WelcomeInfo struct {
	ConnectionID string               `json:"connection_id"`
	PlayerID     string               `json:"player_id"`
	Status       protocol.StatusInfo  `json:"status"`
	Quests       []protocol.QuestInfo `json:"quests"`
}

// handleWSConnection 校验令牌、载入存档并升级连接
func (s *GameServer) handleWSConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		http.Error(w, "未授权", http.StatusUnauthorized)
		return
	}

	deps := s.deps.WithRand(battle.NewRand(0))
	sess, err := session.Load(r.Context(), s.store, claims.PlayerID, claims.Name, deps)
	if err != nil {
		s.log.WithError(err).WithField("player", claims.PlayerID).Error("载入存档失败")
		http.Error(w, "载入存档失败", http.StatusInternalServerError)
		return
	}

	client := NewClient(uuid.NewString(), claims.PlayerID, claims.Name, sess)
	if err := s.register(client); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("WebSocket升级失败")
		s.closeClient(context.Background(), client)
		return
	}

	s.log.WithFields(logrus.Fields{"player": claims.PlayerID, "name": claims.Name}).Info("玩家已连接")

	s.send(client, protocol.TypeWelcome, WelcomeInfo{
		ConnectionID: client.ID,
		PlayerID:     claims.PlayerID,
		Status:       s.statusInfo(client),
		Quests:       protocol.ConvertQuests(sess.Quests()),
	})

	go s.writePump(conn, client)
	go s.readPump(conn, client)
}

// bearerToken 从 Authorization 头读取令牌
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return h
}

// readPump 从WebSocket读取数据
func (s *GameServer) readPump(conn *websocket.Conn, client *Client) {
	defer func() {
		s.closeClient(context.Background(), client)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).Warn("WebSocket错误")
			}
			return
		}

		client.Touch()
		s.handleMessage(client, data)
	}
}

// writePump 向WebSocket写入数据
func (s *GameServer) writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage 解析并分派一条消息
func (s *GameServer) handleMessage(client *Client, data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(client, "", errMalformed)
		return
	}

	handler, ok := s.handlers()[msg.Type]
	if !ok {
		s.sendError(client, msg.Type, errUnknownType)
		return
	}
	if err := handler(client, msg); err != nil {
		s.log.WithFields(logrus.Fields{"player": client.PlayerID, "type": msg.Type}).WithError(err).Debug("请求被拒绝")
		s.sendError(client, msg.Type, err)
	}
}

// send 编码并放入发送队列
func (s *GameServer) send(client *Client, t protocol.MessageType, payload interface{}) {
	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		s.log.WithError(err).Error("序列化消息失败")
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.WithError(err).Error("序列化消息失败")
		return
	}
	if !client.Enqueue(data) {
		// 队列已满，关闭连接
		go s.closeClient(context.Background(), client)
	}
}

// sendError 发送错误响应
func (s *GameServer) sendError(client *Client, request protocol.MessageType, err error) {
	s.send(client, protocol.TypeError, protocol.ErrorInfo{
		Code:    errorCode(err),
		Message: err.Error(),
		Request: string(request),
	})
}

var (
	errMalformed   = errors.New("无法解析的消息")
	errUnknownType = errors.New("未知消息类型")
)
