package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&PasswordResetTokenModel{},
		&ShoppingListModel{},
		&ShoppingListItemModel{},
		&FriendLinkModel{},
		&SharedListModel{},
	}
}
