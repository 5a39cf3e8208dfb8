package handlers

import (
	"errors"
	"log"
	"strings"

	"app/database"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleListUsers returns every account in the system.
// GET /api/admin/users
func HandleListUsers(c *fiber.Ctx) error {
	users, err := database.ListUsers(c.Context())
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": publicUsers(users)})
}

// HandleListPendingUsers returns regular users awaiting approval.
// GET /api/admin/users/pending
func HandleListPendingUsers(c *fiber.Ctx) error {
	users, err := database.ListPendingUsers(c.Context())
	if err != nil {
		log.Printf("Error listing pending users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": publicUsers(users)})
}

// HandleApproveUser approves a pending account by email.
// POST /api/admin/users/approve
func HandleApproveUser(c *fiber.Ctx) error {
	return setApprovalByEmail(c, true, "User approved successfully")
}

// HandleRejectUser rejects a pending account by email.
// POST /api/admin/users/reject
func HandleRejectUser(c *fiber.Ctx) error {
	return setApprovalByEmail(c, false, "User rejected")
}

// HandleAddPreApprovedEmail registers an email that will be auto-approved
// when it signs up.
// POST /api/admin/users/preapproved
func HandleAddPreApprovedEmail(c *fiber.Ctx) error {
	var req models.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Email is required"})
	}

	adminID, _ := c.Locals("userID").(string)
	entry, err := database.AddPreApprovedEmail(c.Context(), req.Email, adminID)
	if err != nil {
		log.Printf("Error pre-approving email %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": entry})
}

func setApprovalByEmail(c *fiber.Ctx, approved bool, okMessage string) error {
	var req models.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Email is required"})
	}

	user, err := database.FindUserByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
		}
		log.Printf("Error fetching user %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	if err := database.SetUserApproval(c.Context(), user.ID, approved); err != nil {
		log.Printf("Error updating approval for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Database error"})
	}

	user.IsApproved = approved
	return c.JSON(fiber.Map{"success": true, "message": okMessage, "data": user.Public()})
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
