package chatbot

// Fixed user-facing messages for the terminal failure states of a chat
// turn. Callers can match on them exactly to tell the failure kinds apart;
// internal error detail never reaches the user.
const (
	// MsgCannotParse is returned when decomposition output cannot be parsed.
	MsgCannotParse = "Something went wrong while understanding your question."
	// MsgCannotUnderstand is returned when decomposition yields no sub-queries.
	MsgCannotUnderstand = "I'm sorry, I couldn't understand your question."
	// MsgNoContext is returned when no sub-query produced any context.
	MsgNoContext = "I couldn't find enough information to answer that."
	// MsgInternalError is returned on generation failure or any unexpected fault.
	MsgInternalError = "Something went wrong on my side. Please try again."
)
