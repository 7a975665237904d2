// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import "hola/internal/models"

func builtin(id, name, background, text, accent string, occasion models.Occasion) models.GreetingTheme {
	return models.GreetingTheme{
		ID:               id,
		Name:             name,
		BackgroundClass:  background,
		TextColorClass:   text,
		AccentColorClass: accent,
		OccasionTypes:    []models.Occasion{occasion},
	}
}

// catalog is the built-in theme list. Order matters: the first theme tagged
// with an occasion is that occasion's default.
var catalog = []models.GreetingTheme{
	// Birthday
	builtin("birthday-festive", "Birthday Festive", "bg-gradient-to-br from-purple-500 to-pink-500", "text-white", "text-yellow-200", models.OccasionBirthday),
	builtin("birthday-confetti", "Birthday Confetti", "bg-gradient-to-r from-blue-400 to-purple-500", "text-white", "text-yellow-300", models.OccasionBirthday),
	builtin("birthday-elegant", "Birthday Elegant", "bg-gradient-to-br from-gray-800 to-gray-900", "text-yellow-300", "text-yellow-500", models.OccasionBirthday),
	builtin("birthday-fun", "Birthday Fun", "bg-gradient-to-br from-pink-400 to-orange-400", "text-white", "text-yellow-200", models.OccasionBirthday),
	builtin("birthday-pastel", "Birthday Pastel", "bg-gradient-to-br from-blue-200 to-pink-200", "text-gray-800", "text-purple-600", models.OccasionBirthday),
	builtin("birthday-whitegold", "White Gold", "bg-gradient-to-br from-white to-amber-100", "text-amber-800", "text-amber-600", models.OccasionBirthday),
	builtin("birthday-royal", "Royal Birthday", "bg-gradient-to-br from-indigo-800 to-purple-900", "text-amber-200", "text-amber-400", models.OccasionBirthday),
	builtin("birthday-tropical", "Tropical", "bg-gradient-to-br from-teal-400 to-emerald-600", "text-white", "text-yellow-200", models.OccasionBirthday),

	// Anniversary
	builtin("anniversary-golden", "Anniversary Golden", "bg-gradient-to-br from-amber-600 to-yellow-500", "text-white", "text-amber-200", models.OccasionAnniversary),
	builtin("anniversary-romance", "Anniversary Romance", "bg-gradient-to-br from-red-400 to-pink-400", "text-white", "text-pink-200", models.OccasionAnniversary),
	builtin("anniversary-classic", "Anniversary Classic", "bg-gradient-to-br from-gray-700 to-gray-800", "text-white", "text-red-300", models.OccasionAnniversary),
	builtin("anniversary-hearts", "Anniversary Hearts", "bg-gradient-to-br from-pink-500 to-rose-600", "text-white", "text-pink-200", models.OccasionAnniversary),
	builtin("anniversary-serene", "Anniversary Serene", "bg-gradient-to-br from-blue-400 to-indigo-500", "text-white", "text-blue-200", models.OccasionAnniversary),
	builtin("anniversary-whitegold", "White Gold", "bg-gradient-to-br from-gray-50 to-amber-100", "text-amber-900", "text-amber-600", models.OccasionAnniversary),
	builtin("anniversary-silver", "Silver Anniversary", "bg-gradient-to-br from-slate-300 to-slate-400", "text-slate-800", "text-slate-900", models.OccasionAnniversary),
	builtin("anniversary-luxury", "Luxury", "bg-gradient-to-br from-slate-900 to-gray-800", "text-amber-300", "text-amber-500", models.OccasionAnniversary),

	// Festival
	builtin("festival-eid", "Eid Mubarak", "bg-gradient-to-br from-emerald-600 to-teal-700", "text-amber-100", "text-amber-300", models.OccasionFestival),
	builtin("festival-christmas", "Christmas Joy", "bg-gradient-to-br from-red-600 to-green-700", "text-white", "text-yellow-200", models.OccasionFestival),
	builtin("festival-bright", "Festival Bright", "bg-gradient-to-br from-yellow-500 to-orange-500", "text-white", "text-yellow-200", models.OccasionFestival),
	builtin("festival-lights", "Festival Lights", "bg-gradient-to-br from-indigo-600 to-purple-600", "text-white", "text-yellow-300", models.OccasionFestival),
	builtin("festival-vibrant", "Festival Vibrant", "bg-gradient-to-br from-pink-500 to-yellow-500", "text-white", "text-yellow-200", models.OccasionFestival),
	builtin("festival-traditional", "Festival Traditional", "bg-gradient-to-br from-red-600 to-orange-500", "text-yellow-100", "text-yellow-300", models.OccasionFestival),
	builtin("festival-celebration", "Festival Celebration", "bg-gradient-to-br from-green-500 to-emerald-600", "text-white", "text-yellow-200", models.OccasionFestival),
	builtin("festival-diwali", "Diwali Celebration", "bg-gradient-to-br from-amber-500 via-orange-500 to-red-600", "text-yellow-200", "text-yellow-100", models.OccasionFestival),
	builtin("festival-holi", "Holi Colors", "bg-gradient-to-br from-fuchsia-600 via-blue-500 to-green-500", "text-white", "text-yellow-200", models.OccasionFestival),
	builtin("festival-whitegold", "White Gold", "bg-gradient-to-br from-white to-amber-50", "text-amber-800", "text-amber-600", models.OccasionFestival),
	builtin("festival-christmas-classic", "Classic Christmas", "bg-gradient-to-br from-green-800 to-green-600", "text-red-200", "text-red-100", models.OccasionFestival),
	builtin("festival-winter", "Winter Holiday", "bg-gradient-to-br from-blue-300 to-blue-100", "text-blue-900", "text-blue-700", models.OccasionFestival),

	// Congratulations
	builtin("congrats-success", "Success", "bg-gradient-to-br from-green-500 to-teal-500", "text-white", "text-green-200", models.OccasionCongratulations),
	builtin("congrats-achievement", "Achievement", "bg-gradient-to-br from-blue-600 to-indigo-600", "text-white", "text-yellow-300", models.OccasionCongratulations),
	builtin("congrats-celebration", "Celebration", "bg-gradient-to-br from-purple-500 to-blue-500", "text-white", "text-yellow-200", models.OccasionCongratulations),
	builtin("congrats-elegant", "Elegant Success", "bg-gradient-to-br from-gray-800 to-gray-900", "text-white", "text-green-400", models.OccasionCongratulations),
	builtin("congrats-victory", "Victory", "bg-gradient-to-br from-amber-500 to-orange-600", "text-white", "text-amber-300", models.OccasionCongratulations),
	builtin("congrats-whitegold", "White Gold", "bg-gradient-to-br from-gray-50 to-amber-100", "text-amber-900", "text-amber-600", models.OccasionCongratulations),
	builtin("congrats-rich", "Rich Achievement", "bg-gradient-to-br from-slate-900 to-slate-700", "text-amber-300", "text-amber-500", models.OccasionCongratulations),
	builtin("congrats-royal", "Royal Success", "bg-gradient-to-br from-indigo-900 to-purple-900", "text-amber-200", "text-amber-400", models.OccasionCongratulations),

	// Thank you
	builtin("thankyou-grateful", "Grateful", "bg-gradient-to-br from-blue-400 to-teal-500", "text-white", "text-blue-200", models.OccasionThankYou),
	builtin("thankyou-appreciation", "Appreciation", "bg-gradient-to-br from-orange-400 to-amber-500", "text-white", "text-yellow-200", models.OccasionThankYou),
	builtin("thankyou-warm", "Warm Thanks", "bg-gradient-to-br from-red-400 to-orange-400", "text-white", "text-red-200", models.OccasionThankYou),
	builtin("thankyou-sincere", "Sincere", "bg-gradient-to-br from-emerald-500 to-green-600", "text-white", "text-emerald-200", models.OccasionThankYou),
	builtin("thankyou-elegant", "Elegant Thanks", "bg-gradient-to-br from-gray-700 to-slate-800", "text-amber-300", "text-amber-400", models.OccasionThankYou),
	builtin("thankyou-whitegold", "White Gold", "bg-gradient-to-br from-white to-amber-100", "text-amber-800", "text-amber-600", models.OccasionThankYou),
	builtin("thankyou-soft", "Soft Pastel", "bg-gradient-to-br from-purple-200 to-pink-200", "text-purple-900", "text-purple-700", models.OccasionThankYou),
	builtin("thankyou-rich", "Rich Gratitude", "bg-gradient-to-br from-amber-700 to-yellow-600", "text-white", "text-amber-200", models.OccasionThankYou),

	// General
	builtin("general-calm", "Calm", "bg-gradient-to-br from-blue-400 to-purple-400", "text-white", "text-blue-200", models.OccasionGeneral),
	builtin("general-bright", "Bright", "bg-gradient-to-br from-yellow-400 to-orange-400", "text-white", "text-yellow-200", models.OccasionGeneral),
	builtin("general-minimal", "Minimal", "bg-gradient-to-br from-gray-100 to-gray-300", "text-gray-800", "text-gray-600", models.OccasionGeneral),
	builtin("general-nature", "Nature", "bg-gradient-to-br from-green-400 to-teal-500", "text-white", "text-green-200", models.OccasionGeneral),
	builtin("general-elegant", "Elegant", "bg-gradient-to-br from-gray-800 to-gray-900", "text-white", "text-gray-400", models.OccasionGeneral),
	builtin("general-sunset", "Sunset", "bg-gradient-to-br from-orange-500 to-pink-500", "text-white", "text-yellow-200", models.OccasionGeneral),
	builtin("general-whitegold", "White Gold", "bg-gradient-to-br from-gray-50 to-amber-100", "text-amber-900", "text-amber-600", models.OccasionGeneral),
	builtin("general-luxury", "Luxury", "bg-gradient-to-br from-slate-900 to-gray-800", "text-amber-300", "text-amber-500", models.OccasionGeneral),
	builtin("general-aurora", "Aurora", "bg-gradient-to-br from-teal-500 via-purple-500 to-pink-500", "text-white", "text-teal-200", models.OccasionGeneral),
	builtin("general-cosmic", "Cosmic", "bg-gradient-to-br from-slate-900 via-purple-900 to-slate-900", "text-purple-200", "text-purple-300", models.OccasionGeneral),
}
