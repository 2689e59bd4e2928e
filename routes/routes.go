package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"sync"

	"merchline/config"
	"merchline/mailer"
	"merchline/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected dashboard clients map with mutex for thread safety
var wsClients = make(map[*websocket.Conn]bool)
var broadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
var mutex = &sync.Mutex{}
var validate = validator.New()

var cfg *config.Config
var mail mailer.Mailer

func SetMailer(m mailer.Mailer) {
	mail = m
}

func SetupRoutes(app *fiber.App, c *config.Config) {
	cfg = c
	if mail == nil {
		mail = mailer.LogMailer{}
	}

	wsHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		mutex.Lock()
		wsClients[conn] = true
		mutex.Unlock()
		log.Println("Dashboard connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				mutex.Lock()
				delete(wsClients, conn)
				mutex.Unlock()
				log.Println("Dashboard disconnected:", conn.RemoteAddr())
				break
			}
		}
	})

	// Handle broadcasting order events to all connected dashboards
	go func() {
		for message := range broadcast {
			mutex.Lock()
			for client := range wsClients {
				err := client.WriteMessage(websocket.TextMessage, message)
				if err != nil {
					log.Printf("WebSocket write error: %v", err)
					client.Close()
					delete(wsClients, client)
				}
			}
			mutex.Unlock()
		}
	}()

	// Live order feed for admin dashboards
	app.Get("/ws", wsHandler)
	// Image upload route
	app.Post("/upload", authRequired, adminRequired, uploadImage)

	api := app.Group("/api")

	api.Post("/login", loginHandler)

	// Product routes (admin catalog management)
	products := api.Group("/products", authRequired, adminRequired)
	products.Get("/search", searchProducts)
	products.Post("/", createProduct)
	products.Get("/", getAllProducts)
	products.Get("/:id", getProduct)
	products.Put("/:id", updateProduct)
	products.Delete("/:id", deleteProduct)

	// Client routes (admin)
	clients := api.Group("/clients", authRequired, adminRequired)
	clients.Get("/search", searchClients)
	clients.Post("/", createClient)
	clients.Get("/", getAllClients)
	clients.Get("/:id", getClient)
	clients.Put("/:id", updateClient)
	clients.Delete("/:id", deleteClient)

	// User routes (admin)
	users := api.Group("/users", authRequired, adminRequired)
	users.Post("/", createUser)
	users.Get("/", getAllUsers)
	users.Get("/:id", getUser)
	users.Put("/:id", updateUser)
	users.Delete("/:id", deleteUser)

	// Project routes: clients browse their active projects, admins manage
	projects := api.Group("/projects", authRequired)
	projects.Get("/", getProjects)
	projects.Get("/:id", getProject)
	projects.Post("/", adminRequired, createProject)
	projects.Put("/:id", adminRequired, updateProject)
	projects.Delete("/:id", adminRequired, deleteProject)

	// Order routes: clients place and read their own, admins see all
	orders := api.Group("/orders", authRequired)
	orders.Post("/", createOrder)
	orders.Get("/", getAllOrders)
	orders.Get("/:id", getOrder)
	orders.Delete("/:id", adminRequired, deleteOrder)
}

// BroadcastOrderCreated pushes an order-created event to connected admin
// dashboards. Dropped when the channel is full; the feed is best effort.
func BroadcastOrderCreated(order *models.Order) {
	payload, err := json.Marshal(fiber.Map{
		"event":          "order_created",
		"order_id":       order.ID,
		"client_id":      order.ClientID,
		"project_id":     order.ProjectID,
		"total_quantity": order.TotalQuantity,
		"price":          order.Price,
	})
	if err != nil {
		log.Printf("Failed to encode order event: %v", err)
		return
	}
	select {
	case broadcast <- payload:
	default:
	}
}

// Image upload handler
func uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	// Generate unique filename
	ext := filepath.Ext(file.Filename)
	uniqueID := uuid.New().String()
	filename := uniqueID + ext
	filepath := "./" + cfg.UploadsDir + "/" + filename

	// Save the file
	if err := c.SaveFile(file, filepath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}

	// Return the file path that can be stored in the database
	return c.JSON(fiber.Map{
		"filename": filename,
		"path":     "/" + cfg.UploadsDir + "/" + filename,
	})
}
