package schema

import "time"

// Cache TTLs for the small set of read-mostly methods.
const (
	ttlIdentity    = time.Hour
	ttlWebhookInfo = time.Minute
	ttlStickerSet  = 5 * time.Minute
	ttlChatInfo    = 2 * time.Minute
)

var (
	fParseMode = Field{Type: "string", Description: "Text formatting mode", Enum: []string{"MarkdownV2", "Markdown", "HTML"}}
	fText      = Field{Type: "string", Description: "Message text, 1-4096 characters"}
	fCaption   = Field{Type: "string", Description: "Media caption, 0-1024 characters"}
	fMsgID     = Field{Type: "integer", Description: "Message identifier"}
	fBool      = Field{Type: "boolean"}
	fLat       = Field{Type: "number", Description: "Latitude", Min: fmin(-90), Max: fmax(90)}
	fLon       = Field{Type: "number", Description: "Longitude", Min: fmin(-180), Max: fmax(180)}
	fString    = Field{Type: "string"}
	fInt       = Field{Type: "integer"}
	fObject    = Field{Type: "object"}
	fIntArray  = Field{Type: "array", Items: &Field{Type: "integer"}}
	fStrArray  = Field{Type: "array", Items: &Field{Type: "string"}}
	fObjArray  = Field{Type: "array", Items: &Field{Type: "object"}}
)

// mediaSlot covers InputMedia arrays: file references live under "media" and
// "thumbnail" of each element.
var mediaSlot = UploadSlot{Name: "media", Kind: SlotMediaArray, NestedKeys: []string{"media", "thumbnail"}}

// methods is the full descriptor table, grouped the way the upstream
// documentation groups its surface.
var methods = []Descriptor{
	// ------------------------------------------------------------------
	// Getting updates / webhook management
	// ------------------------------------------------------------------
	{
		Name: "getUpdates", Category: "updates",
		Description: "Receive incoming updates using long polling",
		Optional:    []string{"offset", "limit", "timeout", "allowed_updates"},
		Fields: map[string]Field{
			"offset":          fInt,
			"limit":           {Type: "integer", Description: "Updates per call", Min: fmin(1), Max: fmax(100)},
			"timeout":         {Type: "integer", Description: "Long-poll timeout in seconds", Min: fmin(0)},
			"allowed_updates": fStrArray,
		},
	},
	{
		Name: "setWebhook", Category: "updates",
		Description: "Specify an HTTPS URL to receive incoming updates",
		Required:    []string{"url"},
		Optional:    []string{"certificate", "ip_address", "max_connections", "allowed_updates", "drop_pending_updates", "secret_token"},
		Fields: map[string]Field{
			"url":             {Type: "string", Description: "HTTPS URL for update delivery"},
			"max_connections": {Type: "integer", Min: fmin(1), Max: fmax(100)},
			"allowed_updates": fStrArray,
			"secret_token":    fString,
		},
		Uploads: []UploadSlot{{Name: "certificate", Kind: SlotFile}},
	},
	{
		Name: "deleteWebhook", Category: "updates",
		Description: "Remove webhook integration and switch back to polling",
		Optional:    []string{"drop_pending_updates"},
		Fields:      map[string]Field{"drop_pending_updates": fBool},
	},
	{
		Name: "getWebhookInfo", Category: "updates",
		Description: "Get current webhook status",
		CacheTTL:    ttlWebhookInfo,
	},

	// ------------------------------------------------------------------
	// Bot identity and lifecycle
	// ------------------------------------------------------------------
	{
		Name: "getMe", Category: "identity",
		Description: "Basic information about the bot account",
		CacheTTL:    ttlIdentity,
	},
	{
		Name: "logOut", Category: "identity",
		Description: "Log out from the cloud API server before moving the bot locally",
	},
	{
		Name: "close", Category: "identity",
		Description: "Close the bot instance before moving it to another local server",
	},

	// ------------------------------------------------------------------
	// Sending messages
	// ------------------------------------------------------------------
	{
		Name: "sendMessage", Category: "messaging", DestScoped: true,
		Description: "Send a text message",
		Required:    []string{"chat_id", "text"},
		Optional: []string{"business_connection_id", "message_thread_id", "parse_mode", "entities",
			"link_preview_options", "disable_notification", "protect_content", "allow_paid_broadcast",
			"message_effect_id", "reply_parameters", "reply_markup"},
		Fields: map[string]Field{
			"text":       fText,
			"parse_mode": fParseMode,
			"entities":   fObjArray,
		},
	},
	{
		Name: "forwardMessage", Category: "messaging", DestScoped: true,
		Description: "Forward a message of any kind",
		Required:    []string{"chat_id", "from_chat_id", "message_id"},
		Optional:    []string{"message_thread_id", "video_start_timestamp", "disable_notification", "protect_content"},
		Fields:      map[string]Field{"message_id": fMsgID},
	},
	{
		Name: "forwardMessages", Category: "messaging", DestScoped: true,
		Description: "Forward multiple messages at once",
		Required:    []string{"chat_id", "from_chat_id", "message_ids"},
		Optional:    []string{"message_thread_id", "disable_notification", "protect_content"},
		Fields:      map[string]Field{"message_ids": fIntArray},
	},
	{
		Name: "copyMessage", Category: "messaging", DestScoped: true,
		Description: "Copy a message without a link to the original",
		Required:    []string{"chat_id", "from_chat_id", "message_id"},
		Optional: []string{"message_thread_id", "video_start_timestamp", "caption", "parse_mode",
			"caption_entities", "show_caption_above_media", "disable_notification", "protect_content",
			"allow_paid_broadcast", "reply_parameters", "reply_markup"},
		Fields: map[string]Field{"message_id": fMsgID, "caption": fCaption, "parse_mode": fParseMode},
	},
	{
		Name: "copyMessages", Category: "messaging", DestScoped: true,
		Description: "Copy multiple messages without links to the originals",
		Required:    []string{"chat_id", "from_chat_id", "message_ids"},
		Optional:    []string{"message_thread_id", "disable_notification", "protect_content", "remove_caption"},
		Fields:      map[string]Field{"message_ids": fIntArray},
	},
	{
		Name: "sendPhoto", Category: "messaging", DestScoped: true,
		Description: "Send a photo",
		Required:    []string{"chat_id", "photo"},
		Optional: []string{"business_connection_id", "message_thread_id", "caption", "parse_mode",
			"caption_entities", "show_caption_above_media", "has_spoiler", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"caption": fCaption, "parse_mode": fParseMode},
		Uploads: []UploadSlot{{Name: "photo", Kind: SlotFile}},
	},
	{
		Name: "sendAudio", Category: "messaging", DestScoped: true,
		Description: "Send an audio file to be displayed in the music player",
		Required:    []string{"chat_id", "audio"},
		Optional: []string{"business_connection_id", "message_thread_id", "caption", "parse_mode",
			"caption_entities", "duration", "performer", "title", "thumbnail", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"caption": fCaption, "parse_mode": fParseMode, "duration": fInt},
		Uploads: []UploadSlot{{Name: "audio", Kind: SlotFile}, {Name: "thumbnail", Kind: SlotFile}},
	},
	{
		Name: "sendDocument", Category: "messaging", DestScoped: true,
		Description: "Send a general file",
		Required:    []string{"chat_id", "document"},
		Optional: []string{"business_connection_id", "message_thread_id", "thumbnail", "caption",
			"parse_mode", "caption_entities", "disable_content_type_detection", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"caption": fCaption, "parse_mode": fParseMode},
		Uploads: []UploadSlot{{Name: "document", Kind: SlotFile}, {Name: "thumbnail", Kind: SlotFile}},
	},
	{
		Name: "sendVideo", Category: "messaging", DestScoped: true,
		Description: "Send a video file",
		Required:    []string{"chat_id", "video"},
		Optional: []string{"business_connection_id", "message_thread_id", "duration", "width", "height",
			"thumbnail", "cover", "start_timestamp", "caption", "parse_mode", "caption_entities",
			"show_caption_above_media", "has_spoiler", "supports_streaming", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"caption": fCaption, "parse_mode": fParseMode, "duration": fInt, "width": fInt, "height": fInt},
		Uploads: []UploadSlot{{Name: "video", Kind: SlotFile}, {Name: "thumbnail", Kind: SlotFile}, {Name: "cover", Kind: SlotFile}},
	},
	{
		Name: "sendAnimation", Category: "messaging", DestScoped: true,
		Description: "Send an animation (GIF or soundless MP4)",
		Required:    []string{"chat_id", "animation"},
		Optional: []string{"business_connection_id", "message_thread_id", "duration", "width", "height",
			"thumbnail", "caption", "parse_mode", "caption_entities", "show_caption_above_media",
			"has_spoiler", "disable_notification", "protect_content", "allow_paid_broadcast",
			"message_effect_id", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"caption": fCaption, "parse_mode": fParseMode},
		Uploads: []UploadSlot{{Name: "animation", Kind: SlotFile}, {Name: "thumbnail", Kind: SlotFile}},
	},
	{
		Name: "sendVoice", Category: "messaging", DestScoped: true,
		Description: "Send a voice note (OGG/OPUS audio)",
		Required:    []string{"chat_id", "voice"},
		Optional: []string{"business_connection_id", "message_thread_id", "caption", "parse_mode",
			"caption_entities", "duration", "disable_notification", "protect_content",
			"allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"caption": fCaption, "parse_mode": fParseMode, "duration": fInt},
		Uploads: []UploadSlot{{Name: "voice", Kind: SlotFile}},
	},
	{
		Name: "sendVideoNote", Category: "messaging", DestScoped: true,
		Description: "Send a round video note",
		Required:    []string{"chat_id", "video_note"},
		Optional: []string{"business_connection_id", "message_thread_id", "duration", "length",
			"thumbnail", "disable_notification", "protect_content", "allow_paid_broadcast",
			"message_effect_id", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"duration": fInt, "length": fInt},
		Uploads: []UploadSlot{{Name: "video_note", Kind: SlotFile}, {Name: "thumbnail", Kind: SlotFile}},
	},
	{
		Name: "sendPaidMedia", Category: "messaging", DestScoped: true,
		Description: "Send paid media",
		Required:    []string{"chat_id", "star_count", "media"},
		Optional: []string{"business_connection_id", "payload", "caption", "parse_mode",
			"caption_entities", "show_caption_above_media", "disable_notification", "protect_content",
			"allow_paid_broadcast", "reply_parameters", "reply_markup"},
		Fields:  map[string]Field{"star_count": {Type: "integer", Min: fmin(1), Max: fmax(10000)}, "media": fObjArray},
		Uploads: []UploadSlot{mediaSlot},
	},
	{
		Name: "sendMediaGroup", Category: "messaging", DestScoped: true,
		Description: "Send a group of photos, videos, documents or audios as an album",
		Required:    []string{"chat_id", "media"},
		Optional: []string{"business_connection_id", "message_thread_id", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters"},
		Fields:  map[string]Field{"media": fObjArray},
		Uploads: []UploadSlot{mediaSlot},
	},
	{
		Name: "sendLocation", Category: "messaging", DestScoped: true,
		Description: "Send a point on the map",
		Required:    []string{"chat_id", "latitude", "longitude"},
		Optional: []string{"business_connection_id", "message_thread_id", "horizontal_accuracy",
			"live_period", "heading", "proximity_alert_radius", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields: map[string]Field{
			"latitude": fLat, "longitude": fLon,
			"heading":     {Type: "integer", Min: fmin(1), Max: fmax(360)},
			"live_period": fInt,
		},
	},
	{
		Name: "sendVenue", Category: "messaging", DestScoped: true,
		Description: "Send information about a venue",
		Required:    []string{"chat_id", "latitude", "longitude", "title", "address"},
		Optional: []string{"business_connection_id", "message_thread_id", "foursquare_id",
			"foursquare_type", "google_place_id", "google_place_type", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields: map[string]Field{"latitude": fLat, "longitude": fLon, "title": fString, "address": fString},
	},
	{
		Name: "sendContact", Category: "messaging", DestScoped: true,
		Description: "Send a phone contact",
		Required:    []string{"chat_id", "phone_number", "first_name"},
		Optional: []string{"business_connection_id", "message_thread_id", "last_name", "vcard",
			"disable_notification", "protect_content", "allow_paid_broadcast", "message_effect_id",
			"reply_parameters", "reply_markup"},
		Fields: map[string]Field{"phone_number": fString, "first_name": fString, "last_name": fString},
	},
	{
		Name: "sendPoll", Category: "messaging", DestScoped: true,
		Description: "Send a native poll",
		Required:    []string{"chat_id", "question", "options"},
		Optional: []string{"business_connection_id", "message_thread_id", "question_parse_mode",
			"question_entities", "is_anonymous", "type", "allows_multiple_answers", "correct_option_id",
			"explanation", "explanation_parse_mode", "explanation_entities", "open_period", "close_date",
			"is_closed", "disable_notification", "protect_content", "allow_paid_broadcast",
			"message_effect_id", "reply_parameters", "reply_markup"},
		Fields: map[string]Field{
			"question": {Type: "string", Description: "Poll question, 1-300 characters"},
			"options":  fObjArray,
			"type":     {Type: "string", Enum: []string{"regular", "quiz"}},
		},
	},
	{
		Name: "sendChecklist", Category: "messaging", DestScoped: true,
		Description: "Send a checklist on behalf of a business account",
		Required:    []string{"business_connection_id", "chat_id", "checklist"},
		Optional:    []string{"disable_notification", "protect_content", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields:      map[string]Field{"checklist": fObject},
	},
	{
		Name: "sendDice", Category: "messaging", DestScoped: true,
		Description: "Send an animated emoji with a random value",
		Required:    []string{"chat_id"},
		Optional: []string{"business_connection_id", "message_thread_id", "emoji", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
		Fields: map[string]Field{"emoji": {Type: "string", Enum: []string{"🎲", "🎯", "🏀", "⚽", "🎳", "🎰"}}},
	},
	{
		Name: "sendChatAction", Category: "messaging", DestScoped: true,
		Description: "Tell the user that something is happening on the bot's side",
		Required:    []string{"chat_id", "action"},
		Optional:    []string{"business_connection_id", "message_thread_id"},
		Fields: map[string]Field{
			"action": {Type: "string", Enum: []string{"typing", "upload_photo", "record_video",
				"upload_video", "record_voice", "upload_voice", "upload_document", "choose_sticker",
				"find_location", "record_video_note", "upload_video_note"}},
		},
	},
	{
		Name: "setMessageReaction", Category: "messaging",
		Description: "Change the bot's reaction on a message",
		Required:    []string{"chat_id", "message_id"},
		Optional:    []string{"reaction", "is_big"},
		Fields:      map[string]Field{"message_id": fMsgID, "reaction": fObjArray},
	},

	// ------------------------------------------------------------------
	// Editing and deleting messages
	// ------------------------------------------------------------------
	{
		Name: "editMessageText", Category: "editing",
		Description: "Edit text of a sent message",
		Required:    []string{"text"},
		Optional: []string{"business_connection_id", "chat_id", "message_id", "inline_message_id",
			"parse_mode", "entities", "link_preview_options", "reply_markup"},
		Fields: map[string]Field{"text": fText, "parse_mode": fParseMode},
		OneOf:  [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
	},
	{
		Name: "editMessageCaption", Category: "editing",
		Description: "Edit caption of a media message",
		Optional: []string{"business_connection_id", "chat_id", "message_id", "inline_message_id",
			"caption", "parse_mode", "caption_entities", "show_caption_above_media", "reply_markup"},
		Fields: map[string]Field{"caption": fCaption, "parse_mode": fParseMode},
		OneOf:  [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
	},
	{
		Name: "editMessageMedia", Category: "editing",
		Description: "Replace the media of a message",
		Required:    []string{"media"},
		Optional:    []string{"business_connection_id", "chat_id", "message_id", "inline_message_id", "reply_markup"},
		Fields:      map[string]Field{"media": fObject},
		OneOf:       [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
		Uploads:     []UploadSlot{{Name: "media", Kind: SlotObject, NestedKeys: []string{"media", "thumbnail"}}},
	},
	{
		Name: "editMessageLiveLocation", Category: "editing",
		Description: "Edit a live location message",
		Required:    []string{"latitude", "longitude"},
		Optional: []string{"business_connection_id", "chat_id", "message_id", "inline_message_id",
			"live_period", "horizontal_accuracy", "heading", "proximity_alert_radius", "reply_markup"},
		Fields: map[string]Field{"latitude": fLat, "longitude": fLon},
		OneOf:  [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
	},
	{
		Name: "stopMessageLiveLocation", Category: "editing",
		Description: "Stop updating a live location before its period expires",
		Optional:    []string{"business_connection_id", "chat_id", "message_id", "inline_message_id", "reply_markup"},
		OneOf:       [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
	},
	{
		Name: "editMessageChecklist", Category: "editing",
		Description: "Edit a checklist on behalf of a business account",
		Required:    []string{"business_connection_id", "chat_id", "message_id", "checklist"},
		Optional:    []string{"reply_markup"},
		Fields:      map[string]Field{"message_id": fMsgID, "checklist": fObject},
	},
	{
		Name: "editMessageReplyMarkup", Category: "editing",
		Description: "Edit only the reply markup of a message",
		Optional:    []string{"business_connection_id", "chat_id", "message_id", "inline_message_id", "reply_markup"},
		OneOf:       [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
	},
	{
		Name: "stopPoll", Category: "editing",
		Description: "Stop a poll sent by the bot",
		Required:    []string{"chat_id", "message_id"},
		Optional:    []string{"business_connection_id", "reply_markup"},
		Fields:      map[string]Field{"message_id": fMsgID},
	},
	{
		Name: "deleteMessage", Category: "editing",
		Description: "Delete a message",
		Required:    []string{"chat_id", "message_id"},
		Fields:      map[string]Field{"message_id": fMsgID},
	},
	{
		Name: "deleteMessages", Category: "editing",
		Description: "Delete multiple messages at once",
		Required:    []string{"chat_id", "message_ids"},
		Fields:      map[string]Field{"message_ids": fIntArray},
	},

	// ------------------------------------------------------------------
	// Chat management
	// ------------------------------------------------------------------
	{
		Name: "banChatMember", Category: "chat_management",
		Description: "Ban a user from a group, supergroup or channel",
		Required:    []string{"chat_id", "user_id"},
		Optional:    []string{"until_date", "revoke_messages"},
		Fields:      map[string]Field{"user_id": fInt, "until_date": fInt},
	},
	{
		Name: "unbanChatMember", Category: "chat_management",
		Description: "Unban a previously banned user",
		Required:    []string{"chat_id", "user_id"},
		Optional:    []string{"only_if_banned"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "restrictChatMember", Category: "chat_management",
		Description: "Restrict a user in a supergroup",
		Required:    []string{"chat_id", "user_id", "permissions"},
		Optional:    []string{"use_independent_chat_permissions", "until_date"},
		Fields:      map[string]Field{"user_id": fInt, "permissions": fObject},
	},
	{
		Name: "promoteChatMember", Category: "chat_management",
		Description: "Promote or demote a user in a supergroup or channel",
		Required:    []string{"chat_id", "user_id"},
		Optional: []string{"is_anonymous", "can_manage_chat", "can_delete_messages", "can_manage_video_chats",
			"can_restrict_members", "can_promote_members", "can_change_info", "can_invite_users",
			"can_post_stories", "can_edit_stories", "can_delete_stories", "can_post_messages",
			"can_edit_messages", "can_pin_messages", "can_manage_topics"},
		Fields: map[string]Field{"user_id": fInt},
	},
	{
		Name: "setChatAdministratorCustomTitle", Category: "chat_management",
		Description: "Set a custom title for an administrator",
		Required:    []string{"chat_id", "user_id", "custom_title"},
		Fields:      map[string]Field{"user_id": fInt, "custom_title": {Type: "string", Description: "Custom title, 0-16 characters"}},
	},
	{
		Name: "banChatSenderChat", Category: "chat_management",
		Description: "Ban a channel chat in a supergroup or channel",
		Required:    []string{"chat_id", "sender_chat_id"},
		Fields:      map[string]Field{"sender_chat_id": fInt},
	},
	{
		Name: "unbanChatSenderChat", Category: "chat_management",
		Description: "Unban a previously banned channel chat",
		Required:    []string{"chat_id", "sender_chat_id"},
		Fields:      map[string]Field{"sender_chat_id": fInt},
	},
	{
		Name: "setChatPermissions", Category: "chat_management",
		Description: "Set default chat permissions for all members",
		Required:    []string{"chat_id", "permissions"},
		Optional:    []string{"use_independent_chat_permissions"},
		Fields:      map[string]Field{"permissions": fObject},
	},
	{
		Name: "exportChatInviteLink", Category: "chat_management",
		Description: "Generate a new primary invite link",
		Required:    []string{"chat_id"},
	},
	{
		Name: "createChatInviteLink", Category: "chat_management",
		Description: "Create an additional invite link",
		Required:    []string{"chat_id"},
		Optional:    []string{"name", "expire_date", "member_limit", "creates_join_request"},
		Fields:      map[string]Field{"member_limit": {Type: "integer", Min: fmin(1), Max: fmax(99999)}},
	},
	{
		Name: "editChatInviteLink", Category: "chat_management",
		Description: "Edit a non-primary invite link",
		Required:    []string{"chat_id", "invite_link"},
		Optional:    []string{"name", "expire_date", "member_limit", "creates_join_request"},
		Fields:      map[string]Field{"invite_link": fString},
	},
	{
		Name: "createChatSubscriptionInviteLink", Category: "chat_management",
		Description: "Create a subscription invite link for a channel",
		Required:    []string{"chat_id", "subscription_period", "subscription_price"},
		Optional:    []string{"name"},
		Fields: map[string]Field{
			"subscription_period": fInt,
			"subscription_price":  {Type: "integer", Min: fmin(1), Max: fmax(10000)},
		},
	},
	{
		Name: "editChatSubscriptionInviteLink", Category: "chat_management",
		Description: "Edit a subscription invite link",
		Required:    []string{"chat_id", "invite_link"},
		Optional:    []string{"name"},
	},
	{
		Name: "revokeChatInviteLink", Category: "chat_management",
		Description: "Revoke an invite link",
		Required:    []string{"chat_id", "invite_link"},
	},
	{
		Name: "approveChatJoinRequest", Category: "chat_management",
		Description: "Approve a chat join request",
		Required:    []string{"chat_id", "user_id"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "declineChatJoinRequest", Category: "chat_management",
		Description: "Decline a chat join request",
		Required:    []string{"chat_id", "user_id"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "setChatPhoto", Category: "chat_management",
		Description: "Set a new chat photo",
		Required:    []string{"chat_id", "photo"},
		Uploads:     []UploadSlot{{Name: "photo", Kind: SlotFile}},
	},
	{
		Name: "deleteChatPhoto", Category: "chat_management",
		Description: "Delete the chat photo",
		Required:    []string{"chat_id"},
	},
	{
		Name: "setChatTitle", Category: "chat_management",
		Description: "Change the chat title",
		Required:    []string{"chat_id", "title"},
		Fields:      map[string]Field{"title": {Type: "string", Description: "New title, 1-128 characters"}},
	},
	{
		Name: "setChatDescription", Category: "chat_management",
		Description: "Change the chat description",
		Required:    []string{"chat_id"},
		Optional:    []string{"description"},
		Fields:      map[string]Field{"description": {Type: "string", Description: "New description, 0-255 characters"}},
	},
	{
		Name: "pinChatMessage", Category: "chat_management",
		Description: "Pin a message in a chat",
		Required:    []string{"chat_id", "message_id"},
		Optional:    []string{"business_connection_id", "disable_notification"},
		Fields:      map[string]Field{"message_id": fMsgID},
	},
	{
		Name: "unpinChatMessage", Category: "chat_management",
		Description: "Unpin a message in a chat",
		Required:    []string{"chat_id"},
		Optional:    []string{"business_connection_id", "message_id"},
		Fields:      map[string]Field{"message_id": fMsgID},
	},
	{
		Name: "unpinAllChatMessages", Category: "chat_management",
		Description: "Unpin all messages in a chat",
		Required:    []string{"chat_id"},
	},
	{
		Name: "leaveChat", Category: "chat_management",
		Description: "Leave a group, supergroup or channel",
		Required:    []string{"chat_id"},
	},
	{
		Name: "getChat", Category: "chat_management",
		Description: "Up-to-date information about a chat",
		Required:    []string{"chat_id"},
		CacheTTL:    ttlChatInfo,
	},
	{
		Name: "getChatAdministrators", Category: "chat_management",
		Description: "List of administrators in a chat",
		Required:    []string{"chat_id"},
	},
	{
		Name: "getChatMemberCount", Category: "chat_management",
		Description: "Number of members in a chat",
		Required:    []string{"chat_id"},
	},
	{
		Name: "getChatMember", Category: "chat_management",
		Description: "Information about a member of a chat",
		Required:    []string{"chat_id", "user_id"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "setChatStickerSet", Category: "chat_management",
		Description: "Set a supergroup sticker set",
		Required:    []string{"chat_id", "sticker_set_name"},
	},
	{
		Name: "deleteChatStickerSet", Category: "chat_management",
		Description: "Delete a supergroup sticker set",
		Required:    []string{"chat_id"},
	},

	// ------------------------------------------------------------------
	// Forum topics
	// ------------------------------------------------------------------
	{
		Name: "getForumTopicIconStickers", Category: "forum",
		Description: "Custom emoji stickers usable as forum topic icons",
	},
	{
		Name: "createForumTopic", Category: "forum",
		Description: "Create a topic in a forum supergroup",
		Required:    []string{"chat_id", "name"},
		Optional:    []string{"icon_color", "icon_custom_emoji_id"},
		Fields:      map[string]Field{"name": {Type: "string", Description: "Topic name, 1-128 characters"}},
	},
	{
		Name: "editForumTopic", Category: "forum",
		Description: "Edit name and icon of a forum topic",
		Required:    []string{"chat_id", "message_thread_id"},
		Optional:    []string{"name", "icon_custom_emoji_id"},
		Fields:      map[string]Field{"message_thread_id": fInt},
	},
	{
		Name: "closeForumTopic", Category: "forum",
		Description: "Close an open forum topic",
		Required:    []string{"chat_id", "message_thread_id"},
		Fields:      map[string]Field{"message_thread_id": fInt},
	},
	{
		Name: "reopenForumTopic", Category: "forum",
		Description: "Reopen a closed forum topic",
		Required:    []string{"chat_id", "message_thread_id"},
		Fields:      map[string]Field{"message_thread_id": fInt},
	},
	{
		Name: "deleteForumTopic", Category: "forum",
		Description: "Delete a forum topic with all its messages",
		Required:    []string{"chat_id", "message_thread_id"},
		Fields:      map[string]Field{"message_thread_id": fInt},
	},
	{
		Name: "unpinAllForumTopicMessages", Category: "forum",
		Description: "Unpin all messages in a forum topic",
		Required:    []string{"chat_id", "message_thread_id"},
		Fields:      map[string]Field{"message_thread_id": fInt},
	},
	{
		Name: "editGeneralForumTopic", Category: "forum",
		Description: "Edit the name of the General forum topic",
		Required:    []string{"chat_id", "name"},
	},
	{
		Name: "closeGeneralForumTopic", Category: "forum",
		Description: "Close the General forum topic",
		Required:    []string{"chat_id"},
	},
	{
		Name: "reopenGeneralForumTopic", Category: "forum",
		Description: "Reopen the General forum topic",
		Required:    []string{"chat_id"},
	},
	{
		Name: "hideGeneralForumTopic", Category: "forum",
		Description: "Hide the General forum topic",
		Required:    []string{"chat_id"},
	},
	{
		Name: "unhideGeneralForumTopic", Category: "forum",
		Description: "Unhide the General forum topic",
		Required:    []string{"chat_id"},
	},
	{
		Name: "unpinAllGeneralForumTopicMessages", Category: "forum",
		Description: "Unpin all messages in the General forum topic",
		Required:    []string{"chat_id"},
	},

	// ------------------------------------------------------------------
	// Users, files, boosts, business
	// ------------------------------------------------------------------
	{
		Name: "getUserProfilePhotos", Category: "users",
		Description: "List of profile pictures for a user",
		Required:    []string{"user_id"},
		Optional:    []string{"offset", "limit"},
		Fields: map[string]Field{
			"user_id": fInt,
			"limit":   {Type: "integer", Min: fmin(1), Max: fmax(100)},
		},
	},
	{
		Name: "setUserEmojiStatus", Category: "users",
		Description: "Change the emoji status of a user who allowed it",
		Required:    []string{"user_id"},
		Optional:    []string{"emoji_status_custom_emoji_id", "emoji_status_expiration_date"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "getFile", Category: "files",
		Description: "Basic info about a file for downloading",
		Required:    []string{"file_id"},
		Fields:      map[string]Field{"file_id": fString},
	},
	{
		Name: "getUserChatBoosts", Category: "users",
		Description: "Boosts added to a chat by a user",
		Required:    []string{"chat_id", "user_id"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "getBusinessConnection", Category: "business",
		Description: "Information about a business account connection",
		Required:    []string{"business_connection_id"},
	},
	{
		Name: "readBusinessMessage", Category: "business",
		Description: "Mark a message of a managed business account as read",
		Required:    []string{"business_connection_id", "chat_id", "message_id"},
		Fields:      map[string]Field{"message_id": fMsgID},
	},
	{
		Name: "deleteBusinessMessages", Category: "business",
		Description: "Delete messages on behalf of a business account",
		Required:    []string{"business_connection_id", "message_ids"},
		Fields:      map[string]Field{"message_ids": fIntArray},
	},
	{
		Name: "setBusinessAccountName", Category: "business",
		Description: "Change the first and last name of a managed business account",
		Required:    []string{"business_connection_id", "first_name"},
		Optional:    []string{"last_name"},
	},
	{
		Name: "setBusinessAccountUsername", Category: "business",
		Description: "Change the username of a managed business account",
		Required:    []string{"business_connection_id"},
		Optional:    []string{"username"},
	},
	{
		Name: "setBusinessAccountBio", Category: "business",
		Description: "Change the bio of a managed business account",
		Required:    []string{"business_connection_id"},
		Optional:    []string{"bio"},
	},
	{
		Name: "setBusinessAccountProfilePhoto", Category: "business",
		Description: "Change the profile photo of a managed business account",
		Required:    []string{"business_connection_id", "photo"},
		Optional:    []string{"is_public"},
		Uploads:     []UploadSlot{{Name: "photo", Kind: SlotObject, NestedKeys: []string{"photo", "animation"}}},
	},
	{
		Name: "removeBusinessAccountProfilePhoto", Category: "business",
		Description: "Remove the profile photo of a managed business account",
		Required:    []string{"business_connection_id"},
		Optional:    []string{"is_public"},
	},
	{
		Name: "setBusinessAccountGiftSettings", Category: "business",
		Description: "Change gift acceptance settings of a managed business account",
		Required:    []string{"business_connection_id", "show_gift_button", "accepted_gift_types"},
		Fields:      map[string]Field{"show_gift_button": fBool, "accepted_gift_types": fObject},
	},
	{
		Name: "getBusinessAccountStarBalance", Category: "business",
		Description: "Star balance of a managed business account",
		Required:    []string{"business_connection_id"},
	},
	{
		Name: "transferBusinessAccountStars", Category: "business",
		Description: "Transfer stars from a managed business account to the bot",
		Required:    []string{"business_connection_id", "star_count"},
		Fields:      map[string]Field{"star_count": {Type: "integer", Min: fmin(1), Max: fmax(10000)}},
	},
	{
		Name: "getBusinessAccountGifts", Category: "business",
		Description: "Gifts received and owned by a managed business account",
		Required:    []string{"business_connection_id"},
		Optional: []string{"exclude_unsaved", "exclude_saved", "exclude_unlimited", "exclude_limited",
			"exclude_unique", "sort_by_price", "offset", "limit"},
		Fields: map[string]Field{"limit": {Type: "integer", Min: fmin(1), Max: fmax(100)}},
	},
	{
		Name: "convertGiftToStars", Category: "business",
		Description: "Convert a received gift to stars",
		Required:    []string{"business_connection_id", "owned_gift_id"},
	},
	{
		Name: "upgradeGift", Category: "business",
		Description: "Upgrade a received gift to a unique one",
		Required:    []string{"business_connection_id", "owned_gift_id"},
		Optional:    []string{"keep_original_details", "star_count"},
	},
	{
		Name: "transferGift", Category: "business",
		Description: "Transfer a unique gift to another user",
		Required:    []string{"business_connection_id", "owned_gift_id", "new_owner_chat_id"},
		Optional:    []string{"star_count"},
	},
	{
		Name: "postStory", Category: "stories",
		Description: "Post a story on behalf of a managed business account",
		Required:    []string{"business_connection_id", "content", "active_period"},
		Optional:    []string{"caption", "parse_mode", "caption_entities", "areas", "post_to_chat_page", "protect_content"},
		Fields: map[string]Field{
			"content":       fObject,
			"active_period": {Type: "integer", Min: fmin(21600), Max: fmax(172800)},
			"parse_mode":    fParseMode,
		},
		Uploads: []UploadSlot{{Name: "content", Kind: SlotObject, NestedKeys: []string{"photo", "video"}}},
	},
	{
		Name: "editStory", Category: "stories",
		Description: "Edit a story previously posted by the bot",
		Required:    []string{"business_connection_id", "story_id", "content"},
		Optional:    []string{"caption", "parse_mode", "caption_entities", "areas"},
		Fields:      map[string]Field{"story_id": fInt, "content": fObject},
		Uploads:     []UploadSlot{{Name: "content", Kind: SlotObject, NestedKeys: []string{"photo", "video"}}},
	},
	{
		Name: "deleteStory", Category: "stories",
		Description: "Delete a story previously posted by the bot",
		Required:    []string{"business_connection_id", "story_id"},
		Fields:      map[string]Field{"story_id": fInt},
	},

	// ------------------------------------------------------------------
	// Bot configuration
	// ------------------------------------------------------------------
	{
		Name: "setMyCommands", Category: "bot_settings",
		Description: "Change the bot's command list",
		Required:    []string{"commands"},
		Optional:    []string{"scope", "language_code"},
		Fields:      map[string]Field{"commands": fObjArray, "scope": fObject, "language_code": fString},
	},
	{
		Name: "deleteMyCommands", Category: "bot_settings",
		Description: "Delete the bot's command list for a scope",
		Optional:    []string{"scope", "language_code"},
	},
	{
		Name: "getMyCommands", Category: "bot_settings",
		Description: "Current command list for a scope",
		Optional:    []string{"scope", "language_code"},
	},
	{
		Name: "setMyName", Category: "bot_settings",
		Description: "Change the bot's name",
		Optional:    []string{"name", "language_code"},
		Fields:      map[string]Field{"name": {Type: "string", Description: "New bot name, 0-64 characters"}},
	},
	{
		Name: "getMyName", Category: "bot_settings",
		Description: "Current bot name for a language",
		Optional:    []string{"language_code"},
	},
	{
		Name: "setMyDescription", Category: "bot_settings",
		Description: "Change the bot's description shown in empty chats",
		Optional:    []string{"description", "language_code"},
	},
	{
		Name: "getMyDescription", Category: "bot_settings",
		Description: "Current bot description for a language",
		Optional:    []string{"language_code"},
	},
	{
		Name: "setMyShortDescription", Category: "bot_settings",
		Description: "Change the bot's short description shown on the profile page",
		Optional:    []string{"short_description", "language_code"},
	},
	{
		Name: "getMyShortDescription", Category: "bot_settings",
		Description: "Current short description for a language",
		Optional:    []string{"language_code"},
	},
	{
		Name: "setChatMenuButton", Category: "bot_settings",
		Description: "Change the bot's menu button",
		Optional:    []string{"chat_id", "menu_button"},
		Fields:      map[string]Field{"menu_button": fObject},
	},
	{
		Name: "getChatMenuButton", Category: "bot_settings",
		Description: "Current menu button setting",
		Optional:    []string{"chat_id"},
	},
	{
		Name: "setMyDefaultAdministratorRights", Category: "bot_settings",
		Description: "Change default administrator rights requested when the bot is added",
		Optional:    []string{"rights", "for_channels"},
		Fields:      map[string]Field{"rights": fObject},
	},
	{
		Name: "getMyDefaultAdministratorRights", Category: "bot_settings",
		Description: "Current default administrator rights",
		Optional:    []string{"for_channels"},
	},

	// ------------------------------------------------------------------
	// Stickers
	// ------------------------------------------------------------------
	{
		Name: "sendSticker", Category: "stickers", DestScoped: true,
		Description: "Send a static, animated or video sticker",
		Required:    []string{"chat_id", "sticker"},
		Optional: []string{"business_connection_id", "message_thread_id", "emoji",
			"disable_notification", "protect_content", "allow_paid_broadcast", "message_effect_id",
			"reply_parameters", "reply_markup"},
		Uploads: []UploadSlot{{Name: "sticker", Kind: SlotFile}},
	},
	{
		Name: "getStickerSet", Category: "stickers",
		Description: "Get a sticker set by name",
		Required:    []string{"name"},
		CacheTTL:    ttlStickerSet,
	},
	{
		Name: "getCustomEmojiStickers", Category: "stickers",
		Description: "Information about custom emoji stickers by identifier",
		Required:    []string{"custom_emoji_ids"},
		Fields:      map[string]Field{"custom_emoji_ids": fStrArray},
	},
	{
		Name: "uploadStickerFile", Category: "stickers",
		Description: "Upload a sticker file for later use in sets",
		Required:    []string{"user_id", "sticker", "sticker_format"},
		Fields: map[string]Field{
			"user_id":        fInt,
			"sticker_format": {Type: "string", Enum: []string{"static", "animated", "video"}},
		},
		Uploads: []UploadSlot{{Name: "sticker", Kind: SlotFile}},
	},
	{
		Name: "createNewStickerSet", Category: "stickers",
		Description: "Create a new sticker set owned by a user",
		Required:    []string{"user_id", "name", "title", "stickers"},
		Optional:    []string{"sticker_type", "needs_repainting"},
		Fields: map[string]Field{
			"user_id":      fInt,
			"stickers":     fObjArray,
			"sticker_type": {Type: "string", Enum: []string{"regular", "mask", "custom_emoji"}},
		},
		Uploads: []UploadSlot{{Name: "stickers", Kind: SlotMediaArray, NestedKeys: []string{"sticker"}}},
	},
	{
		Name: "addStickerToSet", Category: "stickers",
		Description: "Add a sticker to an existing set",
		Required:    []string{"user_id", "name", "sticker"},
		Fields:      map[string]Field{"user_id": fInt, "sticker": fObject},
		Uploads:     []UploadSlot{{Name: "sticker", Kind: SlotObject, NestedKeys: []string{"sticker"}}},
	},
	{
		Name: "setStickerPositionInSet", Category: "stickers",
		Description: "Move a sticker to a position in its set",
		Required:    []string{"sticker", "position"},
		Fields:      map[string]Field{"position": {Type: "integer", Min: fmin(0)}},
	},
	{
		Name: "deleteStickerFromSet", Category: "stickers",
		Description: "Delete a sticker from its set",
		Required:    []string{"sticker"},
	},
	{
		Name: "replaceStickerInSet", Category: "stickers",
		Description: "Replace a sticker in a set with a new one",
		Required:    []string{"user_id", "name", "old_sticker", "sticker"},
		Fields:      map[string]Field{"user_id": fInt, "sticker": fObject},
		Uploads:     []UploadSlot{{Name: "sticker", Kind: SlotObject, NestedKeys: []string{"sticker"}}},
	},
	{
		Name: "setStickerEmojiList", Category: "stickers",
		Description: "Change the emoji assigned to a sticker",
		Required:    []string{"sticker", "emoji_list"},
		Fields:      map[string]Field{"emoji_list": fStrArray},
	},
	{
		Name: "setStickerKeywords", Category: "stickers",
		Description: "Change the search keywords of a sticker",
		Required:    []string{"sticker"},
		Optional:    []string{"keywords"},
		Fields:      map[string]Field{"keywords": fStrArray},
	},
	{
		Name: "setStickerMaskPosition", Category: "stickers",
		Description: "Change the mask position of a mask sticker",
		Required:    []string{"sticker"},
		Optional:    []string{"mask_position"},
		Fields:      map[string]Field{"mask_position": fObject},
	},
	{
		Name: "setStickerSetTitle", Category: "stickers",
		Description: "Change the title of a sticker set",
		Required:    []string{"name", "title"},
	},
	{
		Name: "setStickerSetThumbnail", Category: "stickers",
		Description: "Change the thumbnail of a sticker set",
		Required:    []string{"name", "user_id", "format"},
		Optional:    []string{"thumbnail"},
		Fields: map[string]Field{
			"user_id": fInt,
			"format":  {Type: "string", Enum: []string{"static", "animated", "video"}},
		},
		Uploads: []UploadSlot{{Name: "thumbnail", Kind: SlotFile}},
	},
	{
		Name: "setCustomEmojiStickerSetThumbnail", Category: "stickers",
		Description: "Change the thumbnail of a custom emoji sticker set",
		Required:    []string{"name"},
		Optional:    []string{"custom_emoji_id"},
	},
	{
		Name: "deleteStickerSet", Category: "stickers",
		Description: "Delete a sticker set created by the bot",
		Required:    []string{"name"},
	},

	// ------------------------------------------------------------------
	// Inline mode
	// ------------------------------------------------------------------
	{
		Name: "answerInlineQuery", Category: "inline",
		Description: "Send answers to an inline query",
		Required:    []string{"inline_query_id", "results"},
		Optional:    []string{"cache_time", "is_personal", "next_offset", "button"},
		Fields:      map[string]Field{"results": fObjArray, "cache_time": fInt},
	},
	{
		Name: "answerWebAppQuery", Category: "inline",
		Description: "Set the result of a Web App interaction",
		Required:    []string{"web_app_query_id", "result"},
		Fields:      map[string]Field{"result": fObject},
	},
	{
		Name: "savePreparedInlineMessage", Category: "inline",
		Description: "Store an inline message to be sent later by a user",
		Required:    []string{"user_id", "result"},
		Optional:    []string{"allow_user_chats", "allow_bot_chats", "allow_group_chats", "allow_channel_chats"},
		Fields:      map[string]Field{"user_id": fInt, "result": fObject},
	},

	// ------------------------------------------------------------------
	// Callback queries
	// ------------------------------------------------------------------
	{
		Name: "answerCallbackQuery", Category: "callbacks",
		Description: "Answer a callback query from an inline keyboard",
		Required:    []string{"callback_query_id"},
		Optional:    []string{"text", "show_alert", "url", "cache_time"},
		Fields:      map[string]Field{"text": {Type: "string", Description: "Notification text, 0-200 characters"}},
	},

	// ------------------------------------------------------------------
	// Payments
	// ------------------------------------------------------------------
	{
		Name: "sendInvoice", Category: "payments", DestScoped: true,
		Description: "Send an invoice",
		Required:    []string{"chat_id", "title", "description", "payload", "currency", "prices"},
		Optional: []string{"message_thread_id", "provider_token", "max_tip_amount",
			"suggested_tip_amounts", "start_parameter", "provider_data", "photo_url", "photo_size",
			"photo_width", "photo_height", "need_name", "need_phone_number", "need_email",
			"need_shipping_address", "send_phone_number_to_provider", "send_email_to_provider",
			"is_flexible", "disable_notification", "protect_content", "allow_paid_broadcast",
			"message_effect_id", "reply_parameters", "reply_markup"},
		Fields: map[string]Field{"prices": fObjArray, "currency": fString},
	},
	{
		Name: "createInvoiceLink", Category: "payments",
		Description: "Create a link for an invoice",
		Required:    []string{"title", "description", "payload", "currency", "prices"},
		Optional: []string{"business_connection_id", "provider_token", "subscription_period",
			"max_tip_amount", "suggested_tip_amounts", "provider_data", "photo_url", "photo_size",
			"photo_width", "photo_height", "need_name", "need_phone_number", "need_email",
			"need_shipping_address", "send_phone_number_to_provider", "send_email_to_provider", "is_flexible"},
		Fields: map[string]Field{"prices": fObjArray},
	},
	{
		Name: "answerShippingQuery", Category: "payments",
		Description: "Reply to a shipping query",
		Required:    []string{"shipping_query_id", "ok"},
		Optional:    []string{"shipping_options", "error_message"},
		Fields:      map[string]Field{"ok": fBool, "shipping_options": fObjArray},
	},
	{
		Name: "answerPreCheckoutQuery", Category: "payments",
		Description: "Respond to a pre-checkout query",
		Required:    []string{"pre_checkout_query_id", "ok"},
		Optional:    []string{"error_message"},
		Fields:      map[string]Field{"ok": fBool},
	},
	{
		Name: "getMyStarBalance", Category: "payments",
		Description: "Current balance of the bot in stars",
	},
	{
		Name: "getStarTransactions", Category: "payments",
		Description: "The bot's star transaction history",
		Optional:    []string{"offset", "limit"},
		Fields:      map[string]Field{"limit": {Type: "integer", Min: fmin(1), Max: fmax(100)}},
	},
	{
		Name: "refundStarPayment", Category: "payments",
		Description: "Refund a successful payment in stars",
		Required:    []string{"user_id", "telegram_payment_charge_id"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "editUserStarSubscription", Category: "payments",
		Description: "Cancel or re-enable a user's star subscription",
		Required:    []string{"user_id", "telegram_payment_charge_id", "is_canceled"},
		Fields:      map[string]Field{"user_id": fInt, "is_canceled": fBool},
	},

	// ------------------------------------------------------------------
	// Gifts and verification
	// ------------------------------------------------------------------
	{
		Name: "getAvailableGifts", Category: "gifts",
		Description: "Gifts the bot can send",
	},
	{
		Name: "sendGift", Category: "gifts",
		Description: "Send a gift to a user or chat",
		Required:    []string{"gift_id"},
		Optional:    []string{"user_id", "chat_id", "pay_for_upgrade", "text", "text_parse_mode", "text_entities"},
		OneOf:       [][]string{{"user_id"}, {"chat_id"}},
	},
	{
		Name: "giftPremiumSubscription", Category: "gifts",
		Description: "Gift a premium subscription to a user",
		Required:    []string{"user_id", "month_count", "star_count"},
		Optional:    []string{"text", "text_parse_mode", "text_entities"},
		Fields: map[string]Field{
			"user_id":     fInt,
			"month_count": {Type: "integer", Min: fmin(3), Max: fmax(12)},
		},
	},
	{
		Name: "verifyUser", Category: "verification",
		Description: "Verify a user on behalf of the organization",
		Required:    []string{"user_id"},
		Optional:    []string{"custom_description"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "verifyChat", Category: "verification",
		Description: "Verify a chat on behalf of the organization",
		Required:    []string{"chat_id"},
		Optional:    []string{"custom_description"},
	},
	{
		Name: "removeUserVerification", Category: "verification",
		Description: "Remove verification from a user",
		Required:    []string{"user_id"},
		Fields:      map[string]Field{"user_id": fInt},
	},
	{
		Name: "removeChatVerification", Category: "verification",
		Description: "Remove verification from a chat",
		Required:    []string{"chat_id"},
	},

	// ------------------------------------------------------------------
	// Passport
	// ------------------------------------------------------------------
	{
		Name: "setPassportDataErrors", Category: "passport",
		Description: "Inform a user that submitted passport data contains errors",
		Required:    []string{"user_id", "errors"},
		Fields:      map[string]Field{"user_id": fInt, "errors": fObjArray},
	},

	// ------------------------------------------------------------------
	// Games
	// ------------------------------------------------------------------
	{
		Name: "sendGame", Category: "games", DestScoped: true,
		Description: "Send a game",
		Required:    []string{"chat_id", "game_short_name"},
		Optional: []string{"business_connection_id", "message_thread_id", "disable_notification",
			"protect_content", "allow_paid_broadcast", "message_effect_id", "reply_parameters", "reply_markup"},
	},
	{
		Name: "setGameScore", Category: "games",
		Description: "Set the score of a user in a game message",
		Required:    []string{"user_id", "score"},
		Optional:    []string{"force", "disable_edit_message", "chat_id", "message_id", "inline_message_id"},
		Fields:      map[string]Field{"user_id": fInt, "score": {Type: "integer", Min: fmin(0)}},
		OneOf:       [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
	},
	{
		Name: "getGameHighScores", Category: "games",
		Description: "High score table for a game message",
		Required:    []string{"user_id"},
		Optional:    []string{"chat_id", "message_id", "inline_message_id"},
		Fields:      map[string]Field{"user_id": fInt},
		OneOf:       [][]string{{"chat_id", "message_id"}, {"inline_message_id"}},
	},
}
