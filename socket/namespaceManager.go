package socket

import (
	"nimbusBackend/auth"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	socketio "github.com/zishang520/socket.io/socket"
)

type (
	// OutputNamespace Manages a socket.io namespace that pushes messages from the server
	// to subscribed dashboard clients.
	//
	// The namespace can either be anonymous or authenticated. If authenticated, subscribing requires the clients
	// to provide a valid access token which will be used to authenticate them via auth.AuthManager.
	OutputNamespace[O any] interface {
		// Send Sends a message to all connected clients. This works in authenticated and anonymous namespaces.
		Send(msg O)

		// SendTo Sends a message to a set of user IDs. This only works in authenticated namespaces.
		SendTo(msg O, receivers []string)

		// SendToAdmins Sends a message to all connected admins. This only works in authenticated namespaces.
		SendToAdmins(msg O)

		// ClearBacklog Removes all messages from the backlog
		ClearBacklog()
	}

	namespaceManager[O any] struct {
		// A list of all connected clients, authenticated and anonymous clients
		connectedClients []*SocketConnectedUser

		// A map of all connected authenticated clients indexed by their user ID
		connectedClientsMap   map[string]*SocketConnectedUser
		connectedClientsMutex sync.Mutex

		isAnonymous   bool
		socketManager SocketManager

		// The backlog of previously sent messages
		backlog      []O
		backlogMutex sync.Mutex
		useBacklog   bool

		namespaceName string
		namespace     socketio.NamespaceInterface
	}
)

// CreateNamespace Creates a new socket.io namespace for a given socket manager.
// The namespace can be anonymous, meaning that users don't need to authenticate themselves when connecting.
// In anonymous namespaces, OutputNamespace.SendTo and OutputNamespace.SendToAdmins aren't available.
//
// If a backlog is used, new clients will receive all previously sent messages via the 'backlog' event upon connecting.
//
// The namespace path will be concatenated with slashes to form the namespace name (e.g. [foo, bar] -> /foo/bar).
func CreateNamespace[O any](
	socketManager SocketManager,
	isAnonymous bool,
	useBacklog bool,
	namespacePath ...string,
) OutputNamespace[O] {
	manager := &namespaceManager[O]{
		connectedClients:      make([]*SocketConnectedUser, 0),
		connectedClientsMap:   make(map[string]*SocketConnectedUser),
		connectedClientsMutex: sync.Mutex{},
		socketManager:         socketManager,
		backlog:               make([]O, 0),
		backlogMutex:          sync.Mutex{},
		isAnonymous:           isAnonymous,
		useBacklog:            useBacklog,
	}

	manager.namespaceName = "/" + strings.Join(namespacePath, "/")
	manager.namespace = socketManager.Server().Of(manager.namespaceName, nil)

	if !isAnonymous {
		manager.namespace.Use(socketManager.SocketAuthenticatorMiddleware)
	}

	_ = manager.namespace.On("connection", manager.handleConnection)

	return manager
}

func (m *namespaceManager[O]) ClearBacklog() {
	m.backlogMutex.Lock()
	m.backlog = make([]O, 0)
	m.backlogMutex.Unlock()
}

func (m *namespaceManager[O]) Send(msg O) {
	m.sendTo(msg, m.connectedClients)
}

func (m *namespaceManager[O]) SendTo(msg O, receivers []string) {
	if m.isAnonymous {
		log.Errorf("Server is trying to send an addressed socket message in an anonymous namespace. Aborting.")
		return
	}

	m.sendTo(msg, lo.FilterMap(receivers, func(userId string, _ int) (*SocketConnectedUser, bool) {
		if client, ok := m.connectedClientsMap[userId]; ok {
			return client, true
		}
		return nil, false
	}))
}

func (m *namespaceManager[O]) SendToAdmins(msg O) {
	if m.isAnonymous {
		log.Errorf("Server is trying to send an addressed socket message in an anonymous namespace. Aborting.")
		return
	}

	m.sendTo(msg, lo.Filter(m.connectedClients, func(client *SocketConnectedUser, _ int) bool {
		return client.IsAdmin
	}))
}

func (m *namespaceManager[O]) sendTo(msg O, receivers []*SocketConnectedUser) {
	if m.useBacklog {
		m.backlogMutex.Lock()
		m.backlog = append(m.backlog, msg)
		m.backlogMutex.Unlock()
	}

	for _, client := range receivers {
		if err := client.socket.Emit("data", msg); err != nil {
			log.Warnf("Failed to emit socket message to client: %s", err.Error())
		}
	}
}

func (m *namespaceManager[O]) handleConnection(clients ...any) {
	client, ok := clients[0].(*socketio.Socket)

	if !ok {
		log.Errorf("Received invalid connection: %+v", clients)
		return
	}

	if m.isAnonymous {
		socketClient := &SocketConnectedUser{
			AuthenticatedUser: nil,
			socket:            client,
		}

		m.connectedClientsMutex.Lock()
		m.connectedClients = append(m.connectedClients, socketClient)
		m.connectedClientsMutex.Unlock()

		_ = client.On("disconnect", func(clients ...any) {
			log.Info("Anonymous user disconnected from socket namespace", "namespace", m.namespaceName)

			if i := slices.Index(m.connectedClients, socketClient); i > -1 {
				m.connectedClientsMutex.Lock()
				m.connectedClients = append(m.connectedClients[:i], m.connectedClients[i+1:]...)
				m.connectedClientsMutex.Unlock()
			}
		})

		log.Info("Anonymous user connected to socket namespace", "namespace", m.namespaceName)
		return
	}

	var authUser *auth.AuthenticatedUser
	if accessToken, ok := client.Handshake().Auth.(map[string]any)["token"].(string); !ok {
		return
	} else if authUser = m.socketManager.GetAuthUser(accessToken); authUser == nil {
		// Non-authenticated users should never make it past the middleware
		return
	}

	socketClient := &SocketConnectedUser{
		AuthenticatedUser: authUser,
		socket:            client,
	}

	m.connectedClientsMutex.Lock()
	m.connectedClients = append(m.connectedClients, socketClient)
	m.connectedClientsMap[authUser.UserId] = socketClient
	m.connectedClientsMutex.Unlock()

	_ = client.On("disconnect", func(clients ...any) {
		log.Info("User disconnected from socket namespace", "namespace", m.namespaceName, "user", authUser.UserId)

		m.connectedClientsMutex.Lock()
		if i := slices.Index(m.connectedClients, socketClient); i > -1 {
			m.connectedClients = append(m.connectedClients[:i], m.connectedClients[i+1:]...)
		}
		delete(m.connectedClientsMap, authUser.UserId)
		m.connectedClientsMutex.Unlock()
	})

	log.Info("User connected to socket namespace", "namespace", m.namespaceName, "user", authUser.UserId)

	// Immediately send backlog to user if backlog is used in namespace
	if m.useBacklog {
		_ = client.Emit("backlog", m.backlog)
	}
}
