package enum

// ParseInvoiceStatus maps a status name to its InvoiceStatus value
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch s {
	case "PENDING":
		return InvoiceStatusPending, true
	case "PARTIALLY_PAID":
		return InvoiceStatusPartiallyPaid, true
	case "PAID":
		return InvoiceStatusPaid, true
	case "CANCELLED":
		return InvoiceStatusCancelled, true
	}
	return InvoiceStatusPending, false
}

// ParsePaymentStatus maps a status name to its PaymentStatus value
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "PENDING":
		return PaymentStatusPending, true
	case "COMPLETED":
		return PaymentStatusCompleted, true
	case "FAILED":
		return PaymentStatusFailed, true
	case "REFUNDED":
		return PaymentStatusRefunded, true
	case "CANCELLED":
		return PaymentStatusCancelled, true
	}
	return PaymentStatusPending, false
}

// ParsePaymentMethod maps a method name to its PaymentMethod value
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "CASH":
		return PaymentMethodCash, true
	case "CREDIT_CARD":
		return PaymentMethodCreditCard, true
	case "DEBIT_CARD":
		return PaymentMethodDebitCard, true
	case "UPI":
		return PaymentMethodUPI, true
	case "NET_BANKING":
		return PaymentMethodNetBanking, true
	case "CHEQUE":
		return PaymentMethodCheque, true
	case "BANK_TRANSFER":
		return PaymentMethodBankTransfer, true
	}
	return PaymentMethodCash, false
}
