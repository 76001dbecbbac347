package controller

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	policyModel "dosirak_backend/internals/features/policy/model"
	"dosirak_backend/internals/features/sms/dto"
	"dosirak_backend/internals/features/sms/service"
	studentModel "dosirak_backend/internals/features/students/model"
	helper "dosirak_backend/internals/helpers"
)

var validateSMS = validator.New()

type SMSController struct {
	DB     *gorm.DB
	Client *service.Client
	Sender string
}

func NewSMSController(db *gorm.DB, client *service.Client, sender string) *SMSController {
	return &SMSController{DB: db, Client: client, Sender: sender}
}

// SendSummary texts the parent a summary of the student's current selection.
// The message body is rebuilt server-side from the submitted items so the
// client cannot spoof the bank-transfer note.
func (ctrl *SMSController) SendSummary(c *fiber.Ctx) error {
	var body dto.SummaryRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateSMS.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var st studentModel.StudentModel
	if err := ctrl.DB.First(&st, "code = ?", body.Code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	pol, err := policyModel.LoadPolicy(ctrl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load policy")
	}

	dest := helper.OnlyDigits(body.To)
	sender := helper.OnlyDigits(ctrl.Sender)
	if sender == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "MISSING_SENDER")
	}
	if len(dest) < 9 {
		return helper.JsonError(c, fiber.StatusBadRequest, "INVALID_TO_NUMBER")
	}
	if ctrl.Client.APIKey == "" || ctrl.Client.APISecret == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "MISSING_API_KEYS")
	}

	total := 0
	if body.Total != nil {
		total = *body.Total
	} else {
		for _, it := range body.Items {
			total += it.Price
		}
	}

	name := body.Name
	if name == "" {
		name = st.Name
	}

	extra := ""
	if pol.SMSExtraText != nil {
		extra = *pol.SMSExtraText
	}

	items := make([]service.SummaryItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, service.SummaryItem{Date: it.Date, Slot: it.Slot})
	}
	text := service.BuildSummaryText(name, items, total, extra)

	result, err := ctrl.Client.SendText(c.UserContext(), dest, sender, text)
	if err != nil {
		var rejected *service.SendError
		if errors.As(err, &rejected) {
			return helper.JsonErrorWithDetail(c, fiber.StatusBadRequest,
				"sms_send_failed", json.RawMessage(rejected.Detail))
		}
		return helper.JsonErrorWithDetail(c, fiber.StatusBadRequest,
			"sms_send_failed", err.Error())
	}

	return helper.JsonOK(c, "sms sent", fiber.Map{"result": json.RawMessage(result)})
}
