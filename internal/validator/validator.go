// Package validator registers custom validation tags with Gin's binding
// engine. Currency codes use validator/v10's built-in iso4217 tag.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finsight/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("timeframe", validateTimeframe)
		_ = v.RegisterValidation("chart_type", validateChartType)
		_ = v.RegisterValidation("account_type", validateAccountType)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

func validateTimeframe(fl validator.FieldLevel) bool {
	return models.Timeframe(fl.Field().String()).Valid()
}

func validateChartType(fl validator.FieldLevel) bool {
	return models.ChartType(fl.Field().String()) == models.ChartTypeNetWorth
}

func validateAccountType(fl validator.FieldLevel) bool {
	switch models.AccountType(fl.Field().String()) {
	case models.AccountTypeChecking, models.AccountTypeSavings, models.AccountTypeInvestment,
		models.AccountTypeCredit, models.AccountTypeLoan:
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}
